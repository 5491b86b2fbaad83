package applications

import (
	"context"
	"fmt"
	"sync"

	"github.com/khrees2412/hireboard/pkg/models"
)

// Cache keeps the last successfully fetched lists. Lists are replaced
// wholesale after a successful read; Put stores a single row the API
// returned from a successful write.
type Cache interface {
	Replace(ctx context.Context, scope string, apps []models.JobApplication) error
	Put(ctx context.Context, scope string, app models.JobApplication) error
	Get(ctx context.Context, id int) (*models.JobApplication, error)
	List(ctx context.Context, scope string) ([]models.JobApplication, error)
}

func applicantScope(id int) string { return fmt.Sprintf("applicant:%d", id) }

func jobScope(id int) string { return fmt.Sprintf("job:%d", id) }

// MemoryCache is a Cache for a single process
type MemoryCache struct {
	mu     sync.Mutex
	scopes map[string][]models.JobApplication
	seq    map[string]int
	next   int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		scopes: make(map[string][]models.JobApplication),
		seq:    make(map[string]int),
	}
}

func (c *MemoryCache) Replace(_ context.Context, scope string, apps []models.JobApplication) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.scopes[scope] = append([]models.JobApplication(nil), apps...)
	c.seq[scope] = c.next
	return nil
}

func (c *MemoryCache) Put(_ context.Context, scope string, app models.JobApplication) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	apps := append([]models.JobApplication(nil), c.scopes[scope]...)
	replaced := false
	for i := range apps {
		if apps[i].ID == app.ID {
			apps[i] = app
			replaced = true
		}
	}
	if !replaced {
		apps = append(apps, app)
	}
	c.scopes[scope] = apps
	c.seq[scope] = c.next
	return nil
}

// Get returns the copy from the most recently written scope
func (c *MemoryCache) Get(_ context.Context, id int) (*models.JobApplication, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var found *models.JobApplication
	newest := -1
	for scope, apps := range c.scopes {
		for i := range apps {
			if apps[i].ID == id && c.seq[scope] > newest {
				app := apps[i]
				found = &app
				newest = c.seq[scope]
			}
		}
	}
	return found, nil
}

func (c *MemoryCache) List(_ context.Context, scope string) ([]models.JobApplication, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.JobApplication{}, c.scopes[scope]...), nil
}
