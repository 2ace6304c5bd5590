package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ubfsw/digitpad/classify"
	"github.com/ubfsw/digitpad/config"
	"github.com/ubfsw/digitpad/log"
	"github.com/ubfsw/digitpad/raster"
	"github.com/ubfsw/digitpad/session"
)

func main() {
	inputName := flag.String("i", "", "image to classify")
	outputName := flag.String("o", "", "also write the submitted raster to this file")
	label := flag.Int("label", 0, "actual digit")
	url := flag.String("url", "", "classifier url (default from config)")
	anonymous := flag.Bool("anonymous", false, "don't send the stored session")
	flag.Parse()

	log.InitLog()
	if err := classifyFile(*inputName, *outputName, *label, *url, *anonymous); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func classifyFile(inputName, outputName string, label int, url string, anonymous bool) error {
	if inputName == "" {
		return errors.New("missing input image, use -i")
	}
	if label < 0 || label > 9 {
		return fmt.Errorf("label %d is not a digit", label)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if url != "" {
		cfg.APIURL = url
	}

	img, err := imaging.Open(inputName, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	src := raster.ImageSource{Image: img}
	exporter := raster.NewExporter(cfg.RasterSize)

	if outputName != "" {
		if err := writeRaster(exporter, src, outputName); err != nil {
			return err
		}
	}

	meta := classify.Metadata{GroundTruth: label}
	if !anonymous {
		store, err := session.Open(cfg.SessionFile)
		if err != nil {
			return err
		}
		s := store.Session()
		meta.Username, meta.DeviceID, meta.AuthToken = s.Username, s.DeviceID, s.AuthToken
	}

	pipeline := classify.NewPipeline(classify.NewClient(cfg.APIURL, cfg.Timeout), exporter)
	res, err := pipeline.Predict(context.Background(), src, meta)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	fmt.Printf("%s: %s\n", filepath.Base(inputName), res)
	return nil
}

func loadConfig() (config.Config, error) {
	configFile, err := config.DefaultPath()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(configFile)
}

func writeRaster(exporter raster.Exporter, src raster.Source, outputName string) error {
	if !strings.HasSuffix(strings.ToLower(outputName), ".png") {
		outputName += ".png"
	}
	r, err := exporter.Export(src)
	if err != nil {
		return err
	}
	return os.WriteFile(outputName, r.PNG, 0644)
}
