package levels

// ValidLevelDesc holds the four letter description of each logrus level, indexed by level
var ValidLevelDesc = []string{"PANC", "FATL", "ERRO", "WARN", "INFO", "DEBG", "TRAC"}
