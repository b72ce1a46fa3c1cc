package util_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/netbirdio/netstatus/util"
)

var _ = Describe("Config file", func() {

	var (
		tmpDir string
	)

	type TestConfig struct {
		SomeMap   map[string]string
		SomeArray []string
		SomeField int
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "netstatus_util_test_tmp_*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.RemoveAll(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Config", func() {
		Context("in JSON format", func() {
			It("should be written and read successfully", func() {
				written := &TestConfig{
					SomeMap:   map[string]string{"13": "4g", "20": "4g"},
					SomeArray: []string{"value1", "value2"},
					SomeField: 99,
				}

				file := filepath.Join(tmpDir, "testconfig.json")
				err := util.WriteJson(context.Background(), file, written)
				Expect(err).NotTo(HaveOccurred())

				read, err := util.ReadJson(file, &TestConfig{})
				Expect(err).NotTo(HaveOccurred())
				Expect(read).NotTo(BeNil())
				Expect(read.(*TestConfig)).To(Equal(written))
			})

			It("should create missing parent directories", func() {
				file := filepath.Join(tmpDir, "nested", "dir", "config.json")
				err := util.WriteJson(context.Background(), file, &TestConfig{SomeField: 1})
				Expect(err).NotTo(HaveOccurred())
				Expect(util.FileExists(file)).To(BeTrue())

				info, err := os.Stat(file)
				Expect(err).NotTo(HaveOccurred())
				Expect(info.Mode().Perm()).To(Equal(os.FileMode(0600)))
			})

			It("should leave no temp files behind", func() {
				file := filepath.Join(tmpDir, "config.json")
				for i := 0; i < 3; i++ {
					err := util.WriteJson(context.Background(), file, &TestConfig{SomeField: i})
					Expect(err).NotTo(HaveOccurred())
				}

				entries, err := os.ReadDir(tmpDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(1))
				Expect(entries[0].Name()).To(Equal("config.json"))
			})
		})

		Context("with a cancelled context", func() {
			It("should not write the file", func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				file := filepath.Join(tmpDir, "config.json")
				err := util.WriteJson(ctx, file, &TestConfig{})
				Expect(err).To(MatchError(context.Canceled))
				Expect(util.FileExists(file)).To(BeFalse())
			})
		})

		Context("with malformed content", func() {
			It("should fail to read", func() {
				file := filepath.Join(tmpDir, "broken.json")
				Expect(os.WriteFile(file, []byte("{not json"), 0600)).To(Succeed())

				_, err := util.ReadJson(file, &TestConfig{})
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
