package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
)

// ReferenceRepository is the in-memory store for sources, templates and
// destinations.
type ReferenceRepository struct {
	mu           sync.RWMutex
	sources      map[string]*model.Source
	templates    map[string]*model.Template
	destinations map[string]*model.Destination
}

// NewReferenceRepository creates a new in-memory reference repository
func NewReferenceRepository() *ReferenceRepository {
	return &ReferenceRepository{
		sources:      make(map[string]*model.Source),
		templates:    make(map[string]*model.Template),
		destinations: make(map[string]*model.Destination),
	}
}

// ListSources returns all sources ordered by id
func (r *ReferenceRepository) ListSources(ctx context.Context) ([]model.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]model.Source, 0, len(r.sources))
	for _, source := range r.sources {
		results = append(results, *source)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// GetSource retrieves a source by id
func (r *ReferenceRepository) GetSource(ctx context.Context, id string) (*model.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *source
	return &clone, nil
}

// CreateSource inserts a new source
func (r *ReferenceRepository) CreateSource(ctx context.Context, source *model.Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *source
	r.sources[source.ID] = &clone
	return nil
}

// DeleteSource removes a source and its templates
func (r *ReferenceRepository) DeleteSource(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sources[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.sources, id)
	for templateID, template := range r.templates {
		if template.SourceID == id {
			delete(r.templates, templateID)
		}
	}
	return nil
}

// ListTemplates filters templates by source id; an empty source id yields an
// empty list
func (r *ReferenceRepository) ListTemplates(ctx context.Context, sourceID string) ([]model.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]model.Template, 0)
	if sourceID == "" {
		return results, nil
	}
	for _, template := range r.templates {
		if template.SourceID == sourceID {
			results = append(results, *template)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// CreateTemplate inserts a new template
func (r *ReferenceRepository) CreateTemplate(ctx context.Context, template *model.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sources[template.SourceID]; !ok {
		return store.ErrNotFound
	}
	clone := *template
	r.templates[template.ID] = &clone
	return nil
}

// DeleteTemplate removes a template
func (r *ReferenceRepository) DeleteTemplate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.templates, id)
	return nil
}

// ListDestinations returns all destinations ordered by id
func (r *ReferenceRepository) ListDestinations(ctx context.Context) ([]model.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]model.Destination, 0, len(r.destinations))
	for _, destination := range r.destinations {
		results = append(results, *destination)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// putDestination seeds a destination; used at startup.
func (r *ReferenceRepository) putDestination(destination model.Destination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destinations[destination.ID] = &destination
}
