package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sdboyer/discogen/clisupport"
	"github.com/sdboyer/discogen/generator"
)

type generateFlags struct {
	spec         string
	out          string
	config       string
	modulePrefix string
	libVersion   string
	cliVersion   string
	goVersion    string
	check        bool
}

func newGenerateCmd(logger func() *slog.Logger) *cobra.Command {
	var gf generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the library and CLI modules of one API",
		Long: `Generate reads a discovery document and writes two Go modules beneath
the output directory: the client library and a command line tool that
depends on it through a relative replace directive.

With --check nothing is written; the command fails if any generated file
is missing or differs from what is on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, gf, logger())
		},
	}

	f := cmd.Flags()
	f.StringVar(&gf.spec, "spec", "", "discovery document (JSON)")
	f.StringVar(&gf.out, "out", "", "output directory")
	f.StringVar(&gf.config, "config", "", "YAML configuration file")
	f.StringVar(&gf.modulePrefix, "module-prefix", "", "prefix of generated module paths")
	f.StringVar(&gf.libVersion, "lib-version", "", "version of the generated library")
	f.StringVar(&gf.cliVersion, "cli-version", "", "version of the generated CLI")
	f.StringVar(&gf.goVersion, "go-version", "", "go directive of generated manifests")
	f.BoolVar(&gf.check, "check", false, "verify the output directory instead of writing")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runGenerate(cmd *cobra.Command, gf generateFlags, log *slog.Logger) error {
	var cfg generator.Config
	if gf.config != "" {
		p, err := clisupport.ExpandPath(gf.config)
		if err != nil {
			return err
		}
		if cfg, err = generator.LoadConfig(p); err != nil {
			return err
		}
	}

	// flags win over the config file
	flags := cmd.Flags()
	if flags.Changed("module-prefix") {
		cfg.ModulePrefix = gf.modulePrefix
	}
	if flags.Changed("lib-version") {
		cfg.LibVersion = gf.libVersion
	}
	if flags.Changed("cli-version") {
		cfg.CLIVersion = gf.cliVersion
	}
	if flags.Changed("go-version") {
		cfg.GoVersion = gf.goVersion
	}

	spec, err := clisupport.ExpandPath(gf.spec)
	if err != nil {
		return err
	}
	out, err := clisupport.ExpandPath(gf.out)
	if err != nil {
		return err
	}

	return generator.GenerateFile(cmd.Context(), spec, out, cfg, generator.Options{
		Logger: log,
		Check:  gf.check,
	})
}
