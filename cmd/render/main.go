// Command render turns a résumé JSON file into a PDF or an HTML preview
// without starting the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-pdf/internal/logger"
	"resume-pdf/internal/model"
	"resume-pdf/internal/usecase"
	infra "resume-pdf/pkg/infrastructure"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		in, out, lang, engine, font, chromePath string
		html, verbose                           bool
		timeout                                 time.Duration
	)
	fs := pflag.NewFlagSet("render", pflag.ExitOnError)
	fs.StringVarP(&in, "input", "i", "curriculo.json", "input JSON document")
	fs.StringVarP(&out, "output", "o", "", "output file (default: the download file name)")
	fs.StringVarP(&lang, "lang", "l", "", "document locale (pt-BR, en)")
	fs.StringVarP(&engine, "engine", "e", usecase.EngineLayout, "layout or chrome")
	fs.StringVar(&font, "font", "", "TrueType font for the layout engine")
	fs.StringVar(&chromePath, "chrome-path", "", "Chrome executable for the chrome engine")
	fs.DurationVar(&timeout, "timeout", time.Minute, "chrome engine timeout")
	fs.BoolVar(&html, "html", false, "write the HTML preview instead of a PDF")
	fs.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = fs.Parse(os.Args[1:])

	lcfg := logger.DefaultConfig()
	lcfg.Output = "stderr"
	if verbose {
		lcfg.Level = "debug"
	}
	log, err := logger.New(lcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log, in, out, lang, engine, font, chromePath, timeout, html); err != nil {
		log.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, in, out, lang, engine, font, chromePath string, timeout time.Duration, html bool) error {
	body, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fonts, err := infra.LoadFontSet("", font, "")
	if err != nil {
		return err
	}

	opts := []usecase.Option{usecase.WithLogger(log)}
	if engine == usecase.EngineChrome {
		opts = append(opts, usecase.WithEngine(usecase.NewChromeEngine(infra.NewChromedpRenderer(chromePath, timeout))))
	}
	gen := usecase.NewGenerator(infra.NewFPDFEngine(fonts), opts...)
	req := usecase.Request{Body: body, Locale: lang, Engine: engine, RequestID: filepath.Base(in)}
	ctx := context.Background()

	if html {
		page, err := gen.Preview(ctx, req)
		if err != nil {
			return describe(err)
		}
		if out == "" {
			out = "preview.html"
		}
		if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
			return err
		}
		log.Info("wrote preview", zap.String("file", out))
		return nil
	}

	doc, err := gen.Generate(ctx, req)
	if err != nil {
		return describe(err)
	}
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Bytes, 0o644); err != nil {
		return err
	}
	log.Info("wrote pdf", zap.String("file", out), zap.Int("pages", doc.Pages), zap.Int("bytes", len(doc.Bytes)))
	return nil
}

func describe(err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return fmt.Errorf("invalid document (field %s): %w", verr.Field, err)
	}
	return err
}
