package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/providers/defillama"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

// SyncResult summarizes one catalog sync
type SyncResult struct {
	// ProcessedCount is the number of deduplicated protocols written
	ProcessedCount int
	// RawCount is the number of raw catalog entries written
	RawCount int
}

// Synchronizer pulls the upstream catalog and derives the deduplicated protocol catalog
//
//go:generate mockgen -source=synchronizer.go -destination=../mocks/catalog_synchronizer.go -package=mocks -mock_names=Synchronizer=MockSynchronizer
type Synchronizer interface {
	// SyncCatalog fetches the full catalog, persists raw entries and re-derives every protocol
	SyncCatalog(ctx context.Context) (*SyncResult, error)
}

type synchronizer struct {
	client defillama.Client
	store  store.Store
	sink   logger.EventSink
	clock  adapter.Clock
}

// NewSynchronizer creates a new catalog synchronizer
func NewSynchronizer(client defillama.Client, st store.Store, sink logger.EventSink, clock adapter.Clock) Synchronizer {
	if sink == nil {
		sink = logger.NopEventSink{}
	}
	return &synchronizer{
		client: client,
		store:  st,
		sink:   sink,
		clock:  clock,
	}
}

// SyncCatalog fetches the full catalog, persists raw entries and re-derives every protocol.
// Raw entries committed before a failure are kept.
func (s *synchronizer) SyncCatalog(ctx context.Context) (*SyncResult, error) {
	startTime := s.clock.Now()

	entries, err := s.client.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	raw := BuildRawProtocols(entries)
	if err := s.store.UpsertRawProtocols(ctx, raw); err != nil {
		return nil, err
	}

	protocols := Aggregate(entries)
	if err := s.store.UpsertProtocols(ctx, protocols); err != nil {
		return nil, err
	}

	result := &SyncResult{
		ProcessedCount: len(protocols),
		RawCount:       len(raw),
	}

	logger.InfoCtx(ctx, "Catalog synced",
		zap.Int("raw_count", result.RawCount),
		zap.Int("processed_count", result.ProcessedCount),
		zap.Duration("duration", s.clock.Since(startTime)),
	)
	s.sink.Record(ctx, logger.Event{
		Name:  "catalog_synced",
		Level: zapcore.InfoLevel,
		Fields: map[string]any{
			"raw_count":       result.RawCount,
			"processed_count": result.ProcessedCount,
		},
	})

	return result, nil
}

// BuildRawProtocols maps catalog entries to raw records.
// Entries sharing an upstream id collapse to the last one.
func BuildRawProtocols(entries []defillama.CatalogEntry) []schema.RawProtocol {
	index := make(map[string]int, len(entries))
	raw := make([]schema.RawProtocol, 0, len(entries))

	for i := range entries {
		e := &entries[i]
		id := e.UpstreamID()
		if id == "" {
			id = EntrySlug(e)
		}
		if id == "" {
			continue
		}

		var parent *string
		if e.ParentProtocol != "" {
			parent = types.StringPtr(e.ParentProtocol)
		}

		record := schema.RawProtocol{
			UpstreamID:      id,
			Slug:            EntrySlug(e),
			Name:            e.Name,
			DisplayName:     e.DisplayName,
			Category:        e.Category,
			Chains:          datatypes.JSONSlice[string](nonNil(e.Chains)),
			Logo:            e.Logo,
			Module:          e.Module,
			ParentProtocol:  parent,
			LinkedProtocols: datatypes.JSONSlice[string](nonNil(e.LinkedProtocols)),
			HasBreakdown:    e.HasBreakdown,
		}

		if pos, ok := index[id]; ok {
			raw[pos] = record
			continue
		}
		index[id] = len(raw)
		raw = append(raw, record)
	}

	return raw
}

// Aggregate derives the deduplicated protocol catalog.
//
// Entries without a parent map 1:1 to a protocol at their own slug.
// Entries with a parent collapse into one protocol at the parent slug, named
// after the first linked protocol and using the logo of the first linked
// protocol that resolves to a catalog entry. The first entry to claim a slug
// wins, so the result depends on upstream ordering.
func Aggregate(entries []defillama.CatalogEntry) []schema.Protocol {
	byName := make(map[string]*defillama.CatalogEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		for _, name := range []string{e.DisplayName, e.Name} {
			key := types.NormalizeKey(name)
			if key == "" {
				continue
			}
			if _, ok := byName[key]; !ok {
				byName[key] = e
			}
		}
	}

	bySlug := make(map[string]int, len(entries))
	protocols := make([]schema.Protocol, 0, len(entries))
	add := func(p schema.Protocol) {
		bySlug[p.Slug] = len(protocols)
		protocols = append(protocols, p)
	}

	for i := range entries {
		e := &entries[i]
		if e.ParentProtocol != "" {
			continue
		}
		slug := EntrySlug(e)
		if slug == "" {
			continue
		}
		if _, ok := bySlug[slug]; ok {
			continue
		}
		add(schema.Protocol{
			Slug:        slug,
			Name:        e.Name,
			DisplayName: displayName(e),
			Logo:        e.Logo,
			Category:    e.Category,
			Chains:      datatypes.JSONSlice[string](nonNil(e.Chains)),
		})
	}

	for i := range entries {
		e := &entries[i]
		if e.ParentProtocol == "" {
			continue
		}
		slug := types.ParentSlug(e.ParentProtocol)
		if slug == "" {
			continue
		}
		if _, ok := bySlug[slug]; ok {
			continue
		}

		var (
			first  *defillama.CatalogEntry
			chains []string
		)
		for _, name := range e.LinkedProtocols {
			linked, ok := byName[types.NormalizeKey(name)]
			if !ok {
				continue
			}
			if first == nil {
				first = linked
			}
			chains = appendUnique(chains, linked.Chains...)
		}

		p := schema.Protocol{
			Slug:        slug,
			Name:        e.Name,
			DisplayName: displayName(e),
			Logo:        e.Logo,
			Category:    e.Category,
			IsParent:    true,
		}
		if first != nil {
			p.Name = e.LinkedProtocols[0]
			p.DisplayName = e.LinkedProtocols[0]
			p.Logo = first.Logo
			if p.Category == "" {
				p.Category = first.Category
			}
		}
		p.Chains = datatypes.JSONSlice[string](nonNil(appendUnique(chains, e.Chains...)))
		add(p)
	}

	return protocols
}

// EntrySlug returns the slug of an entry, derived from its name when missing
func EntrySlug(e *defillama.CatalogEntry) string {
	if e.Slug != "" {
		return e.Slug
	}
	return strings.Join(strings.Fields(types.NormalizeKey(e.Name)), "-")
}

func displayName(e *defillama.CatalogEntry) string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
