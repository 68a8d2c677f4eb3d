package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"pharmadir/internal/config"
	"pharmadir/internal/db"
	"pharmadir/internal/model"
	"pharmadir/internal/repository"
	"pharmadir/internal/router"
	"pharmadir/internal/service"
)

func main() {
	source := flag.String("source", "seed/pharmacies.json", "path or http(s) URL of a JSON array of pharmacies")
	flag.Parse()

	cfg := config.Load()
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	log.Info("loading pharmacies", zap.String("source", *source))
	inputs, err := loadPharmacies(ctx, *source)
	if err != nil {
		log.Fatal("load pharmacies", zap.Error(err))
	}

	created, skipped := seedPharmacies(ctx, service.NewPharmacyService(store.Pharmacies, nil, log), inputs, log)

	log.Info("seed completed",
		zap.Int("created", created),
		zap.Int("skipped", skipped),
		zap.Int("total", len(inputs)),
	)
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN, log)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(gormDB); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		return repository.NewGormStore(gormDB), nil
	case config.StoreFirestore:
		var opts []option.ClientOption
		if cfg.FirebaseCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
		if err != nil {
			return nil, fmt.Errorf("firebase init: %w", err)
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore init: %w", err)
		}
		return repository.NewFirestoreStore(client), nil
	default:
		return nil, fmt.Errorf("seeding is not supported for STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// loadPharmacies reads the seed payload from a local file or an HTTP URL.
func loadPharmacies(ctx context.Context, source string) ([]model.CreatePharmacyInput, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		r = f
	}
	defer r.Close()

	var inputs []model.CreatePharmacyInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return inputs, nil
}

// seedPharmacies validates and creates each pharmacy, skipping invalid entries.
func seedPharmacies(ctx context.Context, svc service.PharmacyService, inputs []model.CreatePharmacyInput, log *zap.Logger) (created, skipped int) {
	v := router.NewValidator()
	for i, in := range inputs {
		if err := v.Validate(&in); err != nil {
			log.Warn("skipping invalid pharmacy", zap.Int("index", i), zap.String("name", in.Name), zap.Error(err))
			skipped++
			continue
		}
		resp, err := svc.Create(ctx, in)
		if err != nil {
			log.Warn("skipping pharmacy", zap.Int("index", i), zap.String("name", in.Name), zap.Error(err))
			skipped++
			continue
		}
		log.Debug("created pharmacy", zap.String("id", resp.PharmacyID), zap.String("name", in.Name))
		created++
	}
	return created, skipped
}
