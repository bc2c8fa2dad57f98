package local

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
)

type wellnessDoc struct {
	Records  map[string]models.WellnessRecord `json:"records"` // by date
	Symptoms []models.Symptom                 `json:"symptoms"`
}

// WellnessStore is the "wellness-storage" document; symptoms share it.
type WellnessStore struct {
	doc *document[wellnessDoc]
}

func NewWellnessStore(kv cache.KV) *WellnessStore {
	return &WellnessStore{doc: newDocument[wellnessDoc](kv, "wellness-storage")}
}

// Upsert replaces the whole record for the user and date.
func (s *WellnessStore) Upsert(ctx context.Context, rec models.WellnessRecord) (models.WellnessRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	err := s.doc.update(ctx, rec.UserID, func(d *wellnessDoc) error {
		if d.Records == nil {
			d.Records = map[string]models.WellnessRecord{}
		}
		if prev, ok := d.Records[rec.Date]; ok && prev.ID != "" {
			rec.ID = prev.ID
		}
		d.Records[rec.Date] = rec
		return nil
	})
	return rec, err
}

func (s *WellnessStore) Get(ctx context.Context, userID, date string) (models.WellnessRecord, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return models.WellnessRecord{}, err
	}
	rec, ok := d.Records[date]
	if !ok {
		return models.WellnessRecord{}, fmt.Errorf("wellness %s: %w", date, repositories.ErrNotFound)
	}
	return rec, nil
}

func (s *WellnessStore) ListRange(ctx context.Context, userID, from, to string) ([]models.WellnessRecord, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.WellnessRecord{}
	for date, rec := range d.Records {
		if inRange(date, from, to) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Symptoms returns the symptom view of the same document.
func (s *WellnessStore) Symptoms() *SymptomStore {
	return &SymptomStore{doc: s.doc}
}

type SymptomStore struct {
	doc *document[wellnessDoc]
}

func (s *SymptomStore) Create(ctx context.Context, sym models.Symptom) (models.Symptom, error) {
	if sym.ID == "" {
		sym.ID = uuid.NewString()
	}
	if sym.CreatedAt.IsZero() {
		sym.CreatedAt = time.Now()
	}
	err := s.doc.update(ctx, sym.UserID, func(d *wellnessDoc) error {
		d.Symptoms = append(d.Symptoms, sym)
		return nil
	})
	return sym, err
}

func (s *SymptomStore) ListRange(ctx context.Context, userID, from, to string) ([]models.Symptom, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.Symptom{}
	for _, sym := range d.Symptoms {
		if inRange(sym.Date, from, to) {
			out = append(out, sym)
		}
	}
	return out, nil
}

func (s *SymptomStore) Delete(ctx context.Context, userID, id string) error {
	return s.doc.update(ctx, userID, func(d *wellnessDoc) error {
		for i, sym := range d.Symptoms {
			if sym.ID == id {
				d.Symptoms = append(d.Symptoms[:i], d.Symptoms[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("symptom %s: %w", id, repositories.ErrNotFound)
	})
}

// ReplaceRange swaps cached symptoms dated within [from, to].
func (s *SymptomStore) ReplaceRange(ctx context.Context, userID, from, to string, list []models.Symptom) error {
	return s.doc.update(ctx, userID, func(d *wellnessDoc) error {
		kept := d.Symptoms[:0]
		for _, sym := range d.Symptoms {
			if !inRange(sym.Date, from, to) {
				kept = append(kept, sym)
			}
		}
		d.Symptoms = append(kept, list...)
		return nil
	})
}

var (
	_ repositories.WellnessRepository = (*WellnessStore)(nil)
	_ repositories.SymptomCache       = (*SymptomStore)(nil)
)
