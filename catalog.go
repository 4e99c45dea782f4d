package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Catalog supplies quiz categories and questions. It never touches balances; the only
// thing the ledger takes from it is the tier reward credited on completion.
type Catalog interface {
	ListCategories(ctx context.Context) ([]Category, error)
	FetchQuestions(ctx context.Context, categoryID string, count int) ([]Question, error)
	CategoryTier(ctx context.Context, categoryID string) (Plan, error)
	TierMetadata(tier Plan) TierCategoryMetadata
}

// tierBounds are index ranges into the name-sorted category list.
var tierBounds = []struct {
	tier       Plan
	start, end int
}{
	{PlanFree, 0, 5},
	{PlanStandard, 5, 15},
	{PlanPremium, 15, 35},
}

func tierForIndex(i int) (Plan, bool) {
	for _, b := range tierBounds {
		if i >= b.start && i < b.end {
			return b.tier, true
		}
	}
	return "", false
}

// tierRewardRange is the KSh range a tier's reward is drawn from, and how long its quizzes run.
var tierRewardRange = map[Plan]struct {
	min, max int64
	duration time.Duration
}{
	PlanFree:     {4, 6, 5 * time.Minute},
	PlanStandard: {8, 12, 10 * time.Minute},
	PlanPremium:  {15, 25, 15 * time.Minute},
}

type openTDBCatalog struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration

	mu         sync.RWMutex
	categories []Category
	fetchedAt  time.Time

	metaMu sync.Mutex
	meta   map[Plan]TierCategoryMetadata
}

func newOpenTDBCatalog(baseURL string, ttl time.Duration) *openTDBCatalog {
	return &openTDBCatalog{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		ttl:     ttl,
		meta:    make(map[Plan]TierCategoryMetadata),
	}
}

type openTDBCategories struct {
	TriviaCategories []struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	} `json:"trivia_categories"`
}

type openTDBQuestions struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (c *openTDBCatalog) ListCategories(ctx context.Context) ([]Category, error) {
	c.mu.RLock()
	if c.categories != nil && time.Since(c.fetchedAt) < c.ttl {
		categories := c.categories
		c.mu.RUnlock()
		return categories, nil
	}
	c.mu.RUnlock()

	return c.refresh(ctx)
}

func (c *openTDBCatalog) refresh(ctx context.Context) ([]Category, error) {
	var body openTDBCategories
	if err := c.get(ctx, "/api_category.php", nil, &body); err != nil {
		return nil, err
	}

	all := body.TriviaCategories
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	categories := make([]Category, 0, len(all))
	for i, cat := range all {
		tier, ok := tierForIndex(i)
		if !ok {
			break
		}
		categories = append(categories, Category{Id: cat.Id, Name: cat.Name, Tier: tier})
	}

	c.mu.Lock()
	c.categories = categories
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return categories, nil
}

// keepFresh refreshes the category cache every ttl until ctx is done.
func (c *openTDBCatalog) keepFresh(ctx context.Context) {
	if _, err := c.refresh(ctx); err != nil {
		ErrorLogger.Printf("catalog refresh: %v", err)
	}

	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.refresh(ctx); err != nil {
				ErrorLogger.Printf("catalog refresh: %v", err)
			}
		}
	}
}

func (c *openTDBCatalog) CategoryTier(ctx context.Context, categoryID string) (Plan, error) {
	id, err := strconv.Atoi(categoryID)
	if err != nil {
		return "", ErrUnknownCategory
	}
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return "", err
	}
	for _, cat := range categories {
		if cat.Id == id {
			return cat.Tier, nil
		}
	}
	return "", ErrUnknownCategory
}

func (c *openTDBCatalog) FetchQuestions(ctx context.Context, categoryID string, count int) ([]Question, error) {
	query := url.Values{}
	query.Set("amount", strconv.Itoa(count))
	query.Set("category", categoryID)

	var body openTDBQuestions
	if err := c.get(ctx, "/api.php", query, &body); err != nil {
		return nil, err
	}
	if body.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb: response code %d for category %s", body.ResponseCode, categoryID)
	}

	questions := make([]Question, 0, len(body.Results))
	for _, q := range body.Results {
		choices := append(append([]string{}, q.IncorrectAnswers...), q.CorrectAnswer)
		rand.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
		questions = append(questions, Question{
			Question: q.Question,
			Choices:  choices,
		})
	}
	return questions, nil
}

// TierMetadata is drawn once per tier and reused until the process restarts.
func (c *openTDBCatalog) TierMetadata(tier Plan) TierCategoryMetadata {
	c.metaMu.Lock()
	defer c.metaMu.Unlock()

	if m, ok := c.meta[tier]; ok {
		return m
	}

	r, ok := tierRewardRange[tier]
	if !ok {
		r = tierRewardRange[PlanFree]
	}
	m := TierCategoryMetadata{
		Tier:     tier,
		Duration: r.duration,
		Reward:   decimal.NewFromInt(r.min + rand.Int63n(r.max-r.min+1)),
	}
	c.meta[tier] = m
	return m
}

func (c *openTDBCatalog) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("opentdb: %s returned %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
