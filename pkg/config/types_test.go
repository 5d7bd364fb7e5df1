package config_test

import (
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/pkg/config"
)

var _ = Describe("Duration", func() {
	It("parses duration strings", func() {
		var d config.Duration
		Expect(d.UnmarshalText([]byte("1m30s"))).To(Succeed())
		Expect(d.ToDuration()).To(Equal(90 * time.Second))
	})

	It("rejects negative durations", func() {
		var d config.Duration
		err := d.UnmarshalText([]byte("-5s"))
		Expect(errors.Is(err, config.ErrNegativeDuration)).To(BeTrue())
	})

	It("rejects garbage", func() {
		var d config.Duration
		Expect(d.UnmarshalText([]byte("soon"))).NotTo(Succeed())
	})

	It("marshals back to a duration string", func() {
		text, err := config.Duration(5 * time.Second).MarshalText()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(text)).To(Equal("5s"))
	})
})

var _ = Describe("ByteSize", func() {
	DescribeTable("parsing",
		func(input string, expected config.ByteSize) {
			var b config.ByteSize
			Expect(b.UnmarshalText([]byte(input))).To(Succeed())
			Expect(b).To(Equal(expected))
		},
		Entry("SI megabytes", "5MB", config.ByteSize(5_000_000)),
		Entry("IEC kibibytes", "512KiB", config.ByteSize(512*1024)),
		Entry("plain number", "1024", config.ByteSize(1024)),
	)

	It("rejects garbage", func() {
		_, err := config.ParseByteSize("lots")
		Expect(errors.Is(err, config.ErrInvalidByteSize)).To(BeTrue())
	})

	It("renders humanized", func() {
		Expect(config.ByteSize(5_000_000).String()).To(Equal("5.0 MB"))
	})
})

var _ = Describe("Config getters", func() {
	It("returns defaults for a nil config", func() {
		var cfg *config.Config

		Expect(cfg.GetAudit().IsEnabled()).To(BeTrue())
		Expect(cfg.GetAudit().GetMaxSize()).To(Equal(config.DefaultAuditMaxSize))
		Expect(cfg.GetInject().GetTmuxBinary()).To(Equal("tmux"))
		Expect(cfg.GetInject().GetTimeout()).To(Equal(config.DefaultInjectTimeout))
		Expect(cfg.GetLog().IsDebug()).To(BeTrue())
		Expect(cfg.GetLog().IsTrace()).To(BeFalse())
		Expect(cfg.GetPolicy().BlockedPaths).To(BeEmpty())
	})

	It("uses configured values", func() {
		disabled := false
		cfg := &config.Config{
			State:  &config.StateConfig{Dir: "/run/vocal"},
			Log:    &config.LogConfig{File: "/tmp/vocal.log", Debug: &disabled, Trace: true},
			Audit:  &config.AuditConfig{Enabled: &disabled, File: "/tmp/audit.jsonl", MaxSize: 10},
			Inject: &config.InjectConfig{TmuxBinary: "/opt/bin/tmux", Timeout: config.Duration(time.Second)},
		}

		Expect(cfg.GetState().GetDir()).To(Equal("/run/vocal"))
		Expect(cfg.GetState().SessionRegistryFile()).To(Equal("/run/vocal/session-registry.json"))
		Expect(cfg.GetLog().GetFile()).To(Equal("/tmp/vocal.log"))
		Expect(cfg.GetLog().IsDebug()).To(BeFalse())
		Expect(cfg.GetLog().IsTrace()).To(BeTrue())
		Expect(cfg.GetAudit().IsEnabled()).To(BeFalse())
		Expect(cfg.GetAudit().GetFile()).To(Equal("/tmp/audit.jsonl"))
		Expect(cfg.GetAudit().GetMaxSize()).To(Equal(config.ByteSize(10)))
		Expect(cfg.GetInject().GetTmuxBinary()).To(Equal("/opt/bin/tmux"))
		Expect(cfg.GetInject().GetTimeout()).To(Equal(time.Second))
	})

	It("falls back to the xdg state dir", func() {
		GinkgoT().Setenv("VOCAL_STATE_DIR", "/xdg/vocal")
		Expect((&config.StateConfig{}).GetDir()).To(Equal("/xdg/vocal"))
	})
})
