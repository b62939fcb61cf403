package config_test

import (
	"os"

	"diary/internal/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func setenv(key, value string) {
	GinkgoHelper()

	prev, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

var _ = Describe("LoadConfig", func() {
	It("reads models and temperature from the environment", func() {
		setenv("ANALYSIS_MODEL", "gpt-4o")
		setenv("TEMPERATURE", "0.2")

		cfg, err := config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.AnalysisModel).To(Equal("gpt-4o"))
		Expect(cfg.Temperature).To(Equal(0.2))
	})

	It("splits CORS origins", func() {
		setenv("CORS_ORIGINS", "http://localhost:8501, https://diary.example.com ,")

		cfg, err := config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.CORSOrigins).To(Equal([]string{"http://localhost:8501", "https://diary.example.com"}))
	})

	It("rejects a non-numeric temperature", func() {
		setenv("TEMPERATURE", "warm")

		_, err := config.LoadConfig()
		Expect(err).To(HaveOccurred())
	})

	It("uses the fallback port when PORT is unset", func() {
		cfg := &config.Config{}
		Expect(cfg.PortOr("8000")).To(Equal("8000"))

		cfg.Port = "9090"
		Expect(cfg.PortOr("8000")).To(Equal("9090"))
	})
})
