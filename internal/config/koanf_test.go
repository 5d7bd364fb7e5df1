package config_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/internal/config"
	pkgConfig "github.com/vocal-dev/vocal/pkg/config"
)

var _ = Describe("KoanfLoader", func() {
	var (
		homeDir string
		workDir string
		loader  *config.KoanfLoader
	)

	writeFile := func(path, content string, mode os.FileMode) {
		Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
		Expect(os.WriteFile(path, []byte(content), mode)).To(Succeed())
		Expect(os.Chmod(path, mode)).To(Succeed())
	}

	BeforeEach(func() {
		tmp := GinkgoT().TempDir()
		homeDir = filepath.Join(tmp, "home")
		workDir = filepath.Join(tmp, "work")
		Expect(os.MkdirAll(workDir, 0o700)).To(Succeed())

		loader = config.NewKoanfLoaderWithDirs(homeDir, workDir)
	})

	It("loads defaults without any file", func() {
		cfg, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.GetLog().IsDebug()).To(BeTrue())
		Expect(cfg.GetLog().IsTrace()).To(BeFalse())
		Expect(cfg.GetAudit().IsEnabled()).To(BeTrue())
		Expect(cfg.GetAudit().GetMaxSize()).To(Equal(pkgConfig.DefaultAuditMaxSize))
		Expect(cfg.GetInject().GetTmuxBinary()).To(Equal("tmux"))
		Expect(cfg.GetInject().GetTimeout()).To(Equal(5 * time.Second))
	})

	It("reads the global config", func() {
		writeFile(loader.GlobalConfigPath(), `
[audit]
max_size = "1MB"

[inject]
timeout = "2s"

[policy]
blocked_paths = ["**/secrets/**"]
`, 0o600)

		cfg, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetAudit().GetMaxSize()).To(Equal(pkgConfig.ByteSize(1_000_000)))
		Expect(cfg.GetInject().GetTimeout()).To(Equal(2 * time.Second))
		Expect(cfg.GetPolicy().BlockedPaths).To(ConsistOf("**/secrets/**"))
	})

	It("lets the project config override the global one", func() {
		writeFile(loader.GlobalConfigPath(), "[inject]\ntmux_binary = \"/global/tmux\"\n", 0o600)
		writeFile(filepath.Join(workDir, "vocal.toml"), "[inject]\ntmux_binary = \"/project/tmux\"\n", 0o600)

		cfg, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetInject().GetTmuxBinary()).To(Equal("/project/tmux"))
		Expect(loader.FindProjectConfigPath()).To(Equal(filepath.Join(workDir, "vocal.toml")))
	})

	It("prefers .vocal/config.toml over vocal.toml", func() {
		writeFile(filepath.Join(workDir, ".vocal", "config.toml"), "[audit]\nenabled = false\n", 0o600)
		writeFile(filepath.Join(workDir, "vocal.toml"), "[audit]\nenabled = true\n", 0o600)

		cfg, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetAudit().IsEnabled()).To(BeFalse())
	})

	It("lets env vars override files", func() {
		writeFile(loader.GlobalConfigPath(), "[audit]\nmax_size = \"1MB\"\n", 0o600)
		GinkgoT().Setenv("VOCAL_AUDIT_MAX_SIZE", "2MB")
		GinkgoT().Setenv("VOCAL_POLICY_DANGEROUS_PATTERNS", "terraform apply,helm delete")
		GinkgoT().Setenv("VOCAL_STATE_DIR", "/run/vocal")

		cfg, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetAudit().GetMaxSize()).To(Equal(pkgConfig.ByteSize(2_000_000)))
		Expect(cfg.GetPolicy().DangerousPatterns).To(Equal([]string{"terraform apply", "helm delete"}))
		Expect(cfg.GetState().GetDir()).To(Equal("/run/vocal"))
	})

	It("lets flags override everything", func() {
		GinkgoT().Setenv("VOCAL_LOG_TRACE", "false")

		cfg, err := loader.Load(map[string]any{
			config.FlagTrace:    true,
			config.FlagDebug:    false,
			config.FlagStateDir: "/flag/state",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetLog().IsTrace()).To(BeTrue())
		Expect(cfg.GetLog().IsDebug()).To(BeFalse())
		Expect(cfg.GetState().GetDir()).To(Equal("/flag/state"))
	})

	It("loads an explicit config file", func() {
		path := filepath.Join(workDir, "custom.toml")
		writeFile(path, "[inject]\ntmux_binary = \"/custom/tmux\"\n", 0o600)

		cfg, err := loader.Load(map[string]any{config.FlagConfig: path})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetInject().GetTmuxBinary()).To(Equal("/custom/tmux"))
	})

	It("fails when an explicit config file is missing", func() {
		_, err := loader.Load(map[string]any{config.FlagConfig: filepath.Join(workDir, "nope.toml")})
		Expect(err).To(HaveOccurred())
	})

	It("rejects world-writable config files", func() {
		writeFile(loader.GlobalConfigPath(), "[audit]\nenabled = true\n", 0o666)

		_, err := loader.Load(nil)
		Expect(errors.Is(err, config.ErrInvalidPermissions)).To(BeTrue())
	})

	It("reports invalid TOML", func() {
		writeFile(loader.GlobalConfigPath(), "[audit\n", 0o600)

		_, err := loader.Load(nil)
		Expect(err).To(HaveOccurred())
	})

	It("reports invalid values", func() {
		writeFile(loader.GlobalConfigPath(), "[inject]\ntimeout = \"-1s\"\n", 0o600)

		_, err := loader.Load(nil)
		Expect(err).To(HaveOccurred())
	})

	It("validates blocked path globs", func() {
		writeFile(loader.GlobalConfigPath(), "[policy]\nblocked_paths = [\"[oops\"]\n", 0o600)

		_, err := loader.Load(nil)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())

		_, err = loader.LoadWithoutValidation(nil)
		Expect(err).NotTo(HaveOccurred())
	})
})
