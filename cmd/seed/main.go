package main

import (
	"context"
	"log"
	"time"

	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/implementation"
	"shopping-assistant-be/internal/service"
	"shopping-assistant-be/pkg/database"
	"shopping-assistant-be/pkg/embedding"
	"shopping-assistant-be/pkg/embedding/jina"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds a starter apparel catalog and indexes it for retrieval in one pass,
// without needing the REST app or its embedding worker running.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
	} else {
		provider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
	}

	productRepo := implementation.NewProductRepository(db)
	embeddingRepo := implementation.NewProductEmbeddingRepository(db)
	ctx := context.Background()

	color.Cyan("Seeding product catalog (%d items)\n", len(catalog))

	created, skipped, failed := 0, 0, 0
	for _, req := range catalog {
		existing, err := productRepo.FindByImageIDs(ctx, []string{req.ImageID})
		if err != nil {
			color.Red("  %s: lookup failed: %v", req.ImageID, err)
			failed++
			continue
		}
		if len(existing) > 0 {
			color.Yellow("  %s already exists, skipping", req.ImageID)
			skipped++
			continue
		}

		product := &entity.Product{
			Id:          uuid.New(),
			ProductType: req.ProductType,
			Brand:       req.Brand,
			Color:       req.Color,
			Material:    req.Material,
			Gender:      req.Gender,
			Size:        req.Size,
			Pattern:     req.Pattern,
			Theme:       req.Theme,
			Fit:         req.Fit,
			SleeveType:  req.SleeveType,
			NeckType:    req.NeckType,
			Category:    req.Category,
			Subcategory: req.Subcategory,
			PriceINR:    req.PriceINR,
			ImageID:     req.ImageID,
			ImagePath:   req.ImagePath,
			Description: req.Description,
			CreatedAt:   time.Now(),
		}

		if err := productRepo.Create(ctx, product); err != nil {
			color.Red("  %s: create failed: %v", req.ImageID, err)
			failed++
			continue
		}

		document := service.BuildProductDocument(product)
		contextRes, err := provider.Generate(ctx, document, "RETRIEVAL_DOCUMENT")
		if err != nil {
			color.Red("  %s: embedding failed: %v", req.ImageID, err)
			failed++
			continue
		}

		var contentValues []float32
		if product.ImagePath != "" {
			if contentRes, err := provider.GenerateImage(ctx, product.ImagePath); err == nil {
				contentValues = contentRes.Embedding.Values
			} else {
				color.Yellow("  %s: no image vector (%v), indexing text-only", req.ImageID, err)
			}
		}

		err = embeddingRepo.Create(ctx, &entity.ProductEmbedding{
			Id:            uuid.New(),
			ProductId:     product.Id,
			Document:      document,
			ContentValues: contentValues,
			ContextValues: contextRes.Embedding.Values,
			CreatedAt:     time.Now(),
		})
		if err != nil {
			color.Red("  %s: embedding save failed: %v", req.ImageID, err)
			failed++
			continue
		}

		color.Green("  %s %s %s indexed", product.Brand, product.Color, product.ProductType)
		created++
	}

	color.Cyan("\nDone: %d created, %d skipped, %d failed\n", created, skipped, failed)
}

var catalog = []dto.CreateProductRequest{
	{ProductType: "tshirt", Brand: "Roadster", Color: "black", Material: "cotton", Gender: "men", Size: "M", Pattern: "solid", Fit: "regular", SleeveType: "half sleeve", NeckType: "round neck", Category: "topwear", Subcategory: "tshirts", PriceINR: 499, ImageID: "img_rd_001", ImagePath: "uploads/catalog/img_rd_001.jpg", Description: "Everyday black crew neck tee"},
	{ProductType: "tshirt", Brand: "Roadster", Color: "white", Material: "cotton", Gender: "men", Size: "L", Pattern: "solid", Fit: "slim", SleeveType: "half sleeve", NeckType: "round neck", Category: "topwear", Subcategory: "tshirts", PriceINR: 549, ImageID: "img_rd_002", ImagePath: "uploads/catalog/img_rd_002.jpg", Description: "Slim fit white tee"},
	{ProductType: "tshirt", Brand: "HRX", Color: "navy blue", Material: "polyester", Gender: "men", Size: "M", Pattern: "printed", Theme: "sports", Fit: "regular", SleeveType: "half sleeve", NeckType: "round neck", Category: "topwear", Subcategory: "tshirts", PriceINR: 699, ImageID: "img_hrx_001", ImagePath: "uploads/catalog/img_hrx_001.jpg", Description: "Training tee with moisture wicking"},
	{ProductType: "shirt", Brand: "Levis", Color: "blue", Material: "denim", Gender: "men", Size: "L", Pattern: "solid", Fit: "regular", SleeveType: "full sleeve", Category: "topwear", Subcategory: "casual shirts", PriceINR: 1899, ImageID: "img_lv_001", ImagePath: "uploads/catalog/img_lv_001.jpg", Description: "Classic denim shirt"},
	{ProductType: "jeans", Brand: "Levis", Color: "dark blue", Material: "denim", Gender: "men", Size: "32", Pattern: "solid", Fit: "slim", Category: "bottomwear", Subcategory: "jeans", PriceINR: 2499, ImageID: "img_lv_002", ImagePath: "uploads/catalog/img_lv_002.jpg", Description: "511 slim fit jeans"},
	{ProductType: "dress", Brand: "Zara", Color: "red", Material: "viscose", Gender: "women", Size: "S", Pattern: "floral", Fit: "regular", Category: "dresses", Subcategory: "midi dresses", PriceINR: 3299, ImageID: "img_zr_001", ImagePath: "uploads/catalog/img_zr_001.jpg", Description: "Floral midi dress"},
	{ProductType: "kurta", Brand: "Anouk", Color: "yellow", Material: "cotton", Gender: "women", Size: "M", Pattern: "printed", Theme: "ethnic", Fit: "straight", SleeveType: "three quarter", Category: "topwear", Subcategory: "kurtas", PriceINR: 899, ImageID: "img_an_001", ImagePath: "uploads/catalog/img_an_001.jpg", Description: "Printed straight kurta"},
	{ProductType: "hoodie", Brand: "H&M", Color: "grey", Material: "fleece", Gender: "unisex", Size: "L", Pattern: "solid", Fit: "oversized", SleeveType: "full sleeve", NeckType: "hooded", Category: "topwear", Subcategory: "sweatshirts", PriceINR: 1499, ImageID: "img_hm_001", ImagePath: "uploads/catalog/img_hm_001.jpg", Description: "Oversized fleece hoodie"},
	{ProductType: "sneakers", Brand: "Nike", Color: "white", Material: "mesh", Gender: "men", Size: "9", Pattern: "solid", Theme: "sports", Category: "footwear", Subcategory: "casual shoes", PriceINR: 5499, ImageID: "img_nk_001", ImagePath: "uploads/catalog/img_nk_001.jpg", Description: "Court vision low sneakers"},
	{ProductType: "saree", Brand: "Kalini", Color: "green", Material: "silk blend", Gender: "women", Pattern: "woven design", Theme: "festive", Category: "ethnic wear", Subcategory: "sarees", PriceINR: 2199, ImageID: "img_kl_001", ImagePath: "uploads/catalog/img_kl_001.jpg", Description: "Banarasi style woven saree"},
}
