// Command translate translates sentences from the command line or stdin
// without starting the server.
//
// Flags:
//
//	--sources   comma-separated word-list URIs (default: the bundled lists)
//	--dir       s2t or t2s (default: s2t)
//	--format    text or html (default: text)
//	--encoding  word-list encoding (default: utf-8)
//
// Every argument is translated as one sentence. Without arguments each line
// of stdin is translated.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/glossary/internal/app"
	"github.com/heartmarshall/glossary/internal/config"
	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/render"
	"github.com/heartmarshall/glossary/internal/service/glossary"
	"github.com/heartmarshall/glossary/internal/wordlist"
)

func main() {
	sourcesFlag := flag.String("sources", "embed://library.properties,embed://duplicates.properties", "comma-separated word-list URIs")
	dirFlag := flag.String("dir", "s2t", "translation direction: s2t or t2s")
	formatFlag := flag.String("format", "text", "output format: text or html")
	encodingFlag := flag.String("encoding", "utf-8", "word-list encoding")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := app.NewLogger(config.LogConfig{Level: level, Format: "text"})

	if err := run(logger, *sourcesFlag, *dirFlag, *formatFlag, *encodingFlag, flag.Args(), os.Stdin, os.Stdout); err != nil {
		log.Fatalf("translate: %v", err)
	}
}

func run(logger *slog.Logger, sourceList, dirName, format, encName string, args []string, in io.Reader, out io.Writer) error {
	dir, err := domain.ParseDirection(dirName)
	if err != nil {
		return err
	}
	enc, err := wordlist.ParseEncoding(encName)
	if err != nil {
		return err
	}
	if format != "text" && format != "html" {
		return fmt.Errorf("unknown format %q", format)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sources := app.NewSources(config.DatabaseConfig{}, enc, logger)
	defer sources.Close()

	baseline, err := sources.BuildAll(ctx, config.ParseList(sourceList))
	if err != nil {
		return err
	}

	svc, err := glossary.NewService(logger, glossary.Options{BaselineSources: baseline})
	if err != nil {
		return err
	}
	if _, err := svc.LoadBaseline(ctx); err != nil {
		return err
	}

	translateOne := func(sentence string) error {
		result, err := svc.Query(ctx, sentence, dir)
		if err != nil {
			return err
		}
		if format == "html" {
			result, err = render.Fragment(render.Section{Header: sentence, Body: result})
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(out, result)
		return err
	}

	if len(args) > 0 {
		for _, a := range args {
			if err := translateOne(a); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := translateOne(line); err != nil {
			return err
		}
	}
	return sc.Err()
}
