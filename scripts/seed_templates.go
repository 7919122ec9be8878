package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/khoahotran/resume-builder/adapters/persistence"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type templateEntry struct {
	catalog.TemplateMeta `yaml:",inline"`
	Active               *bool `yaml:"active"`
}

type templateFile struct {
	Templates []templateEntry `yaml:"templates"`
}

func main() {
	path := flag.String("file", "scripts/templates.yaml", "template catalog in YAML")
	flag.Parse()

	fmt.Println("seeding resume templates...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	entries, err := loadTemplates(*path)
	if err != nil {
		log.Fatalf("cannot read templates: %v", err)
	}

	ctx := context.Background()
	store, err := persistence.OpenStore(ctx, cfg, logger.NewNop())
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer store.Close()

	for _, e := range entries {
		active := e.Active == nil || *e.Active
		if err := store.Templates.Upsert(ctx, e.TemplateMeta, active); err != nil {
			log.Fatalf("cannot upsert template %s: %v", e.ID, err)
		}
		fmt.Printf("  %s (active=%t)\n", e.ID, active)
	}

	fmt.Printf("done, %d templates\n", len(entries))
}

// loadTemplates falls back to the built-in catalog when the file does not exist.
func loadTemplates(path string) ([]templateEntry, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: %s not found, seeding built-in templates", path)
		builtin := catalog.Builtin()
		entries := make([]templateEntry, 0, len(builtin))
		for _, t := range builtin {
			entries = append(entries, templateEntry{TemplateMeta: t})
		}
		return entries, nil
	}
	if err != nil {
		return nil, err
	}

	var f templateFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	for _, e := range f.Templates {
		if e.ID == "" {
			return nil, fmt.Errorf("template without id in %s", path)
		}
	}
	return f.Templates, nil
}
