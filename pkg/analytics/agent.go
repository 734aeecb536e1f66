package analytics

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"shopping-assistant-be/pkg/llm"
	"shopping-assistant-be/pkg/store"

	"gorm.io/gorm"
)

// schemaInfo is the catalog schema handed to the SQL generator. The catalog
// is deliberately flat: one products table carries every attribute.
const schemaInfo = `# RETAIL CATALOG SCHEMA

## products
- products (id, product_type, brand, color, material, gender, size, pattern,
  theme, fit, sleeve_type, neck_type, category, subcategory, price_inr,
  image_id, image_path, description, created_at, updated_at, deleted_at)
- One row per catalog item. Soft-deleted rows have deleted_at set and must be
  excluded with "deleted_at IS NULL".

## COMMON QUERIES:
- Counts and averages by brand, product_type, color
- Price range filters on price_inr
- Cheapest/most expensive lookups with ORDER BY price_inr`

// deniedKeywords blocks anything beyond reads. The generated statement must
// also start with SELECT.
var deniedKeywords = []string{
	"drop", "delete", "update", "insert", "alter",
	"create", "truncate", "replace", "exec", "execute", "grant",
}

// Agent answers catalog FAQ questions ("how many", "average price") by
// generating a SELECT with the chat model, validating it, running it through
// GORM and phrasing the rows.
type Agent struct {
	provider llm.LLMProvider
	db       *gorm.DB
	logger   *log.Logger
}

func NewAgent(provider llm.LLMProvider, db *gorm.DB, logger *log.Logger) *Agent {
	return &Agent{
		provider: provider,
		db:       db,
		logger:   logger,
	}
}

// Answer runs the full question-to-answer path. The stitched fact set gives
// the generator conversational context ("average price of them").
func (a *Agent) Answer(ctx context.Context, question string, facts store.FactSet) (string, error) {
	sqlQuery, err := a.GenerateSQL(ctx, question, facts)
	if err != nil {
		return "", err
	}
	if !ValidateReadOnly(sqlQuery) {
		return "", fmt.Errorf("generated statement is not a plain SELECT: %s", sqlQuery)
	}
	a.logger.Printf("[ANALYTICS] executing: %s", sqlQuery)

	var rows []map[string]interface{}
	if err := a.db.WithContext(ctx).Raw(sqlQuery).Scan(&rows).Error; err != nil {
		return "", fmt.Errorf("analytics query failed: %w", err)
	}
	return FormatResults(question, rows), nil
}

// GenerateSQL asks the model for a single SELECT statement.
func (a *Agent) GenerateSQL(ctx context.Context, question string, facts store.FactSet) (string, error) {
	systemPrompt := fmt.Sprintf(`You are an expert SQL query generator for a retail catalog.

SCHEMA INFORMATION:
%s

RULES:
1. Generate ONLY SELECT statements
2. Always exclude soft-deleted rows: deleted_at IS NULL
3. Use appropriate WHERE clauses for filtering
4. Use LIMIT when appropriate to avoid huge results
5. Handle price queries with proper numeric comparisons
6. Use ILIKE for partial text matching
7. Return valid PostgreSQL syntax

Return ONLY the SQL query, no explanations.`, schemaInfo)

	userPrompt := fmt.Sprintf("Conversation context: %s\nGenerate SQL for: %s", facts.SearchText(), question)

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
	raw, err := a.provider.Chat(ctx, history, llm.WithTemperature(0), llm.WithMaxTokens(500))
	if err != nil {
		return "", fmt.Errorf("sql generation failed: %w", err)
	}

	sqlQuery := llm.StripJSONFence(raw)
	sqlQuery = strings.TrimPrefix(sqlQuery, "sql")
	return strings.TrimSpace(sqlQuery), nil
}

// ValidateReadOnly admits only single plain SELECT statements.
func ValidateReadOnly(sqlQuery string) bool {
	normalized := strings.ToLower(strings.TrimSpace(sqlQuery))
	if !strings.HasPrefix(normalized, "select") {
		return false
	}
	// A semicolon with anything after it smuggles in a second statement.
	if idx := strings.Index(normalized, ";"); idx >= 0 && strings.TrimSpace(normalized[idx+1:]) != "" {
		return false
	}
	for _, kw := range deniedKeywords {
		if containsWord(normalized, kw) {
			return false
		}
	}
	return true
}

func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(s[start-1])
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// FormatResults phrases query rows as an answer. A single-cell result is
// treated as an aggregate; a NULL aggregate gets an explicit "no data"
// answer rather than rendering a nil.
func FormatResults(question string, rows []map[string]interface{}) string {
	if len(rows) == 0 {
		return "No results found for your query."
	}

	if len(rows) == 1 && len(rows[0]) == 1 {
		for _, value := range rows[0] {
			if value == nil {
				return fmt.Sprintf("%s: no data available", question)
			}
			switch v := value.(type) {
			case float64:
				return fmt.Sprintf("%s: ₹%.2f", question, v)
			default:
				return fmt.Sprintf("%s: %v", question, v)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n\n", len(rows))
	shown := rows
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, row := range shown {
		fmt.Fprintf(&b, "%d. ", i+1)
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			v := row[k]
			if v == nil {
				parts = append(parts, fmt.Sprintf("%s: n/a", k))
				continue
			}
			if k == "price_inr" {
				parts = append(parts, fmt.Sprintf("₹%v", v))
				continue
			}
			parts = append(parts, fmt.Sprintf("%v", v))
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteString("\n")
	}
	if len(rows) > len(shown) {
		fmt.Fprintf(&b, "\n(%d more rows)", len(rows)-len(shown))
	}
	return strings.TrimRight(b.String(), "\n")
}
