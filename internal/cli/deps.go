package cli

import (
	"go.uber.org/zap"

	"examgen/internal/app"
	"examgen/internal/config"
	"examgen/internal/font"
	"examgen/internal/generator"
	"examgen/internal/logging"
	"examgen/internal/render"
)

// deps wires the service graph for one command invocation.
type deps struct {
	cfg     config.Config
	log     *zap.Logger
	fonts   *font.Provisioner
	service *app.ExamService
}

func buildDeps(cfgPath, outputDir string, strictFont bool) (*deps, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log.Path, cfg.Log.Level)

	fonts := font.New(font.Config{
		CachePath:   cfg.Font.CachePath,
		SystemPaths: cfg.Font.SystemPaths,
		FallbackURL: cfg.Font.FallbackURL,
		Timeout:     config.Timeout(cfg.Font.DownloadTimeout, font.DefaultDownloadTimeout),
	}, log)

	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	service := app.NewExamService(
		generator.New(),
		render.New(fonts, log),
		app.Options{RequireUnicodeFont: strictFont, OutputDir: outputDir},
		log,
	)
	return &deps{cfg: cfg, log: log, fonts: fonts, service: service}, nil
}

func (d *deps) close() {
	_ = d.log.Sync()
}
