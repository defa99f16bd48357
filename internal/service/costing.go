package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/snackcounter/api/internal/database"
)

// Where a recipe line's unit cost came from.
const (
	CostSourceOverride = "override"
	CostSourceLatest   = "latest"
	CostSourceAverage  = "average"
	CostSourceNone     = "none"
)

var ErrRecipeNotFound = errors.New("product cost recipe not found")

// CostStore defines the DB methods needed by the cost rollup.
// Satisfied by *database.Queries (and its WithTx variant).
type CostStore interface {
	ListStockItemCosts(ctx context.Context) ([]database.ListStockItemCostsRow, error)
	UpsertProductRecipe(ctx context.Context, arg database.UpsertProductRecipeParams) (database.ProductRecipe, error)
	GetProductRecipeByName(ctx context.Context, productName string) (database.ProductRecipe, error)
	ListProductRecipes(ctx context.Context) ([]database.ProductRecipe, error)
	DeleteRecipeIngredients(ctx context.Context, recipeID uuid.UUID) error
	CreateRecipeIngredient(ctx context.Context, arg database.CreateRecipeIngredientParams) (database.RecipeIngredient, error)
	ListRecipeIngredients(ctx context.Context, recipeID uuid.UUID) ([]database.RecipeIngredient, error)
}

// NewCostStore creates a CostStore from a DBTX (pool or tx).
type NewCostStore func(db database.DBTX) CostStore

// IngredientCost is a stock item with the prices the rollup can draw on.
type IngredientCost struct {
	StockItemID  uuid.UUID
	Code         string
	Name         string
	Unit         string
	AveragePrice *decimal.Decimal
	LatestPrice  *decimal.Decimal
	UnitCost     decimal.Decimal
	CostSource   string
}

// RecipeIngredientInput is one ingredient as submitted by the recipe editor.
// StockRef is a stock item id or code.
type RecipeIngredientInput struct {
	StockRef         string
	Quantity         *decimal.Decimal
	UnitCostOverride *decimal.Decimal
}

// RecipeLine is a saved ingredient with its cost resolved against current prices.
type RecipeLine struct {
	StockItemID      uuid.UUID
	Code             string
	Name             string
	Unit             string
	Quantity         decimal.Decimal
	UnitCostOverride *decimal.Decimal
	UnitCost         decimal.Decimal
	CostSource       string
	LineCost         decimal.Decimal
}

// RecipeCost is a product's recipe with its rolled-up unit cost.
type RecipeCost struct {
	ProductName string
	Notes       string
	Ingredients []RecipeLine
	TotalCost   decimal.Decimal
	UpdatedAt   time.Time
}

// CostService maintains product recipes and rolls their costs up from
// stock purchase prices.
type CostService struct {
	db       DB
	newStore NewCostStore
}

// NewCostService creates a new CostService.
func NewCostService(db DB, newStore NewCostStore) *CostService {
	return &CostService{db: db, newStore: newStore}
}

// ResolveUnitCost picks an ingredient's unit cost: the manual override, else
// the latest purchase price, else the average purchase price, else zero.
func ResolveUnitCost(override, latest, average *decimal.Decimal) (decimal.Decimal, string) {
	switch {
	case override != nil:
		return *override, CostSourceOverride
	case latest != nil:
		return *latest, CostSourceLatest
	case average != nil:
		return *average, CostSourceAverage
	}
	return decimal.Zero, CostSourceNone
}

// ComputeRecipeCost sums the line costs, each rounded to 4 decimal places.
func ComputeRecipeCost(lines []RecipeLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitCost).Round(4))
	}
	return total
}

// SaveRecipe replaces the recipe for productName wholesale and returns its
// freshly computed cost. Ingredients without a positive quantity or with an
// unknown stock reference are dropped.
func (s *CostService) SaveRecipe(ctx context.Context, productName, notes string, ingredients []RecipeIngredientInput) (*RecipeCost, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, ErrProductNameRequired
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	stock, err := loadStockCosts(ctx, store)
	if err != nil {
		return nil, err
	}

	recipe, err := store.UpsertProductRecipe(ctx, database.UpsertProductRecipeParams{
		ProductName: productName,
		Notes:       strings.TrimSpace(notes),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert product recipe: %w", err)
	}

	if err := store.DeleteRecipeIngredients(ctx, recipe.ID); err != nil {
		return nil, fmt.Errorf("delete recipe ingredients: %w", err)
	}

	var saved []database.RecipeIngredient
	for _, in := range ingredients {
		if in.Quantity == nil || !in.Quantity.IsPositive() {
			continue
		}
		item, ok := stock.lookup(in.StockRef)
		if !ok {
			continue
		}
		row, err := store.CreateRecipeIngredient(ctx, database.CreateRecipeIngredientParams{
			RecipeID:         recipe.ID,
			StockItemID:      item.StockItemID,
			Quantity:         decimalToNumeric(*in.Quantity),
			UnitCostOverride: optionalNumeric(in.UnitCostOverride),
			Position:         int32(len(saved)),
		})
		if err != nil {
			return nil, fmt.Errorf("create recipe ingredient: %w", err)
		}
		saved = append(saved, row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return buildRecipeCost(recipe, saved, stock), nil
}

// GetRecipeCost loads a recipe and prices it against current purchase data.
func (s *CostService) GetRecipeCost(ctx context.Context, productName string) (*RecipeCost, error) {
	store := s.newStore(s.db)

	recipe, err := store.GetProductRecipeByName(ctx, strings.TrimSpace(productName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get product recipe: %w", err)
	}

	stock, err := loadStockCosts(ctx, store)
	if err != nil {
		return nil, err
	}

	rows, err := store.ListRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	return buildRecipeCost(recipe, rows, stock), nil
}

// ListRecipeCosts prices every saved recipe.
func (s *CostService) ListRecipeCosts(ctx context.Context) ([]RecipeCost, error) {
	store := s.newStore(s.db)

	recipes, err := store.ListProductRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list product recipes: %w", err)
	}

	stock, err := loadStockCosts(ctx, store)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeCost, 0, len(recipes))
	for _, r := range recipes {
		rows, err := store.ListRecipeIngredients(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("list recipe ingredients: %w", err)
		}
		out = append(out, *buildRecipeCost(r, rows, stock))
	}
	return out, nil
}

// ListIngredientCosts returns every active stock item with its effective unit cost.
func (s *CostService) ListIngredientCosts(ctx context.Context) ([]IngredientCost, error) {
	stock, err := loadStockCosts(ctx, s.newStore(s.db))
	if err != nil {
		return nil, err
	}
	return stock.items, nil
}

// --- Helpers ---

type stockCosts struct {
	items  []IngredientCost
	byID   map[uuid.UUID]int
	byCode map[string]int
}

type stockCostLister interface {
	ListStockItemCosts(ctx context.Context) ([]database.ListStockItemCostsRow, error)
}

func loadStockCosts(ctx context.Context, store stockCostLister) (*stockCosts, error) {
	rows, err := store.ListStockItemCosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock item costs: %w", err)
	}

	sc := &stockCosts{
		items:  make([]IngredientCost, len(rows)),
		byID:   make(map[uuid.UUID]int, len(rows)),
		byCode: make(map[string]int, len(rows)),
	}
	for i, r := range rows {
		avg := numericToDecimalPtr(r.AveragePrice)
		latest := numericToDecimalPtr(r.LatestPrice)
		cost, source := ResolveUnitCost(nil, latest, avg)
		sc.items[i] = IngredientCost{
			StockItemID:  r.ID,
			Code:         r.Code,
			Name:         r.Name,
			Unit:         r.Unit,
			AveragePrice: avg,
			LatestPrice:  latest,
			UnitCost:     cost,
			CostSource:   source,
		}
		sc.byID[r.ID] = i
		sc.byCode[strings.ToLower(r.Code)] = i
	}
	return sc, nil
}

// lookup resolves a stock reference given as an id or a code.
func (sc *stockCosts) lookup(ref string) (IngredientCost, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		if i, ok := sc.byID[id]; ok {
			return sc.items[i], true
		}
	}
	if i, ok := sc.byCode[strings.ToLower(ref)]; ok {
		return sc.items[i], true
	}
	return IngredientCost{}, false
}

func buildRecipeCost(recipe database.ProductRecipe, rows []database.RecipeIngredient, stock *stockCosts) *RecipeCost {
	lines := make([]RecipeLine, len(rows))
	for i, row := range rows {
		line := RecipeLine{
			StockItemID:      row.StockItemID,
			Quantity:         numericToDecimal(row.Quantity),
			UnitCostOverride: numericToDecimalPtr(row.UnitCostOverride),
		}
		var latest, avg *decimal.Decimal
		if idx, ok := stock.byID[row.StockItemID]; ok {
			item := stock.items[idx]
			line.Code, line.Name, line.Unit = item.Code, item.Name, item.Unit
			latest, avg = item.LatestPrice, item.AveragePrice
		}
		line.UnitCost, line.CostSource = ResolveUnitCost(line.UnitCostOverride, latest, avg)
		line.LineCost = line.Quantity.Mul(line.UnitCost).Round(4)
		lines[i] = line
	}
	return &RecipeCost{
		ProductName: recipe.ProductName,
		Notes:       recipe.Notes,
		Ingredients: lines,
		TotalCost:   ComputeRecipeCost(lines),
		UpdatedAt:   recipe.UpdatedAt,
	}
}
