package main

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/database"
	"github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories"
	"github.com/foodgram-app/backend/logger"
)

// Loads the ingredient reference data from a CSV file with
// "name,measurement_unit" rows. Existing pairs are left untouched.
func main() {
	configPath := "config.toml"
	csvPath := "data/ingredients.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.NewHandler("Foodgram-Load", cfg.Log.Level)))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ingredients, err := readIngredients(csvPath)
	if err != nil {
		slog.Error("Failed to read CSV", slog.String("path", csvPath), slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := repositories.NewIngredientRepository(db.BunDB())
	inserted, err := repo.BulkUpsert(ctx, ingredients)
	if err != nil {
		slog.Error("Failed to load ingredients", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Ingredients loaded",
		slog.Int("total", len(ingredients)),
		slog.Int64("inserted", inserted))
}

func readIngredients(path string) ([]*models.Ingredient, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var ingredients []*models.Ingredient
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			continue
		}
		ingredients = append(ingredients, &models.Ingredient{
			Name:            name,
			MeasurementUnit: unit,
		})
	}
	return ingredients, nil
}
