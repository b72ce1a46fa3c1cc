package connstatus

import (
	"fmt"
	"strconv"
	"strings"
)

// TransportType is the coarse category of the active network
type TransportType int

const (
	TransportOther TransportType = iota
	TransportWifi
	TransportMobile
)

// Android ConnectivityManager.TYPE_* values
const (
	androidTypeMobile = 0
	androidTypeWifi   = 1
)

func (t TransportType) String() string {
	switch t {
	case TransportWifi:
		return "wifi"
	case TransportMobile:
		return "mobile"
	default:
		return "other"
	}
}

// TransportFromAndroid maps a ConnectivityManager.TYPE_* value to a TransportType
func TransportFromAndroid(networkType int) TransportType {
	switch networkType {
	case androidTypeWifi:
		return TransportWifi
	case androidTypeMobile:
		return TransportMobile
	default:
		return TransportOther
	}
}

// Subtype is a cellular technology code using the TelephonyManager.NETWORK_TYPE_* numbering
type Subtype int

const (
	SubtypeUnknown Subtype = 0
	SubtypeGPRS    Subtype = 1
	SubtypeEDGE    Subtype = 2
	SubtypeUMTS    Subtype = 3
	SubtypeCDMA    Subtype = 4
	SubtypeEVDO0   Subtype = 5
	SubtypeEVDOA   Subtype = 6
	Subtype1xRTT   Subtype = 7
	SubtypeHSDPA   Subtype = 8
	SubtypeHSUPA   Subtype = 9
	SubtypeHSPA    Subtype = 10
	SubtypeIDEN    Subtype = 11
	SubtypeEVDOB   Subtype = 12
	SubtypeLTE     Subtype = 13
	SubtypeEHRPD   Subtype = 14
	SubtypeHSPAP   Subtype = 15
	SubtypeGSM     Subtype = 16
	SubtypeTDSCDMA Subtype = 17
	SubtypeIWLAN   Subtype = 18
	SubtypeLTECA   Subtype = 19
	SubtypeNR      Subtype = 20
)

var subtypeNames = map[Subtype]string{
	SubtypeUnknown: "UNKNOWN",
	SubtypeGPRS:    "GPRS",
	SubtypeEDGE:    "EDGE",
	SubtypeUMTS:    "UMTS",
	SubtypeCDMA:    "CDMA",
	SubtypeEVDO0:   "EVDO_0",
	SubtypeEVDOA:   "EVDO_A",
	Subtype1xRTT:   "1xRTT",
	SubtypeHSDPA:   "HSDPA",
	SubtypeHSUPA:   "HSUPA",
	SubtypeHSPA:    "HSPA",
	SubtypeIDEN:    "IDEN",
	SubtypeEVDOB:   "EVDO_B",
	SubtypeLTE:     "LTE",
	SubtypeEHRPD:   "EHRPD",
	SubtypeHSPAP:   "HSPAP",
	SubtypeGSM:     "GSM",
	SubtypeTDSCDMA: "TD_SCDMA",
	SubtypeIWLAN:   "IWLAN",
	SubtypeLTECA:   "LTE_CA",
	SubtypeNR:      "NR",
}

func (s Subtype) String() string {
	if name, ok := subtypeNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// ParseSubtype accepts either a subtype name (LTE, HSPA, ...) or its numeric code
func ParseSubtype(s string) (Subtype, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		return Subtype(code), nil
	}
	for code, name := range subtypeNames {
		if strings.EqualFold(name, s) {
			return code, nil
		}
	}
	return SubtypeUnknown, fmt.Errorf("unknown subtype %q", s)
}

// PhoneType is the radio standard reported by the telephony service
type PhoneType int

const (
	PhoneTypeNone PhoneType = 0
	PhoneTypeGSM  PhoneType = 1
	PhoneTypeCDMA PhoneType = 2
	PhoneTypeSIP  PhoneType = 3
)

func (p PhoneType) String() string {
	switch p {
	case PhoneTypeGSM:
		return "GSM"
	case PhoneTypeCDMA:
		return "CDMA"
	case PhoneTypeSIP:
		return "SIP"
	default:
		return "NONE"
	}
}

// RawNetworkState is a single reading of the host's active network.
// HasActive is false when the host reports no active network object.
// Subtype is only meaningful for TransportMobile.
type RawNetworkState struct {
	HasActive bool
	Connected bool
	Transport TransportType
	Subtype   Subtype

	// Interface is the host interface name, when known. Diagnostics only.
	Interface string
}

// NoActiveNetwork is the reading used when the host has no active network
var NoActiveNetwork = RawNetworkState{}

func (s RawNetworkState) String() string {
	if !s.HasActive {
		return "no active network"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "transport=%s connected=%t", s.Transport, s.Connected)
	if s.Transport == TransportMobile {
		fmt.Fprintf(&b, " subtype=%s", s.Subtype)
	}
	if s.Interface != "" {
		fmt.Fprintf(&b, " interface=%s", s.Interface)
	}
	return b.String()
}
