package domain

import (
	"sort"
	"time"

	shareddomain "ecomdash/internal/shared/domain"
)

// Dataset représente le jeu de données chargé, immuable après construction
// Les lignes sont triées par date d'achat croissante dès la construction:
// la déduplication par order_id ("première occurrence") s'appuie sur cet ordre
type Dataset struct {
	records     []OrderItemRecord
	source      string
	droppedRows int
}

// NewDataset construit un Dataset à partir de lignes parsées
// Les lignes sont copiées puis triées, l'appelant garde la propriété du slice
func NewDataset(records []OrderItemRecord, source string, droppedRows int) *Dataset {
	sorted := append([]OrderItemRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PurchaseTimestamp.Before(sorted[j].PurchaseTimestamp)
	})

	return &Dataset{
		records:     sorted,
		source:      source,
		droppedRows: droppedRows,
	}
}

// Records retourne une copie des lignes du dataset
func (d *Dataset) Records() []OrderItemRecord {
	return append([]OrderItemRecord(nil), d.records...)
}

// Len retourne le nombre de lignes
func (d *Dataset) Len() int {
	return len(d.records)
}

// Source retourne l'identité de la source (chemin du fichier, DSN...)
func (d *Dataset) Source() string {
	return d.source
}

// DroppedRows retourne le nombre de lignes écartées au chargement
func (d *Dataset) DroppedRows() int {
	return d.droppedRows
}

// FullRange retourne la période min/max des dates d'achat du dataset
// C'est la période de repli quand l'appelant fournit une période invalide
func (d *Dataset) FullRange() (shareddomain.DateRange, bool) {
	if len(d.records) == 0 {
		return shareddomain.DateRange{}, false
	}
	// Les lignes sont triées par date d'achat
	first := d.records[0].PurchaseTimestamp
	last := d.records[len(d.records)-1].PurchaseTimestamp

	dr, err := shareddomain.NewDateRange(first, last)
	if err != nil {
		return shareddomain.DateRange{}, false
	}
	return dr, true
}

// ResolveRange valide une période demandée ou se replie sur la période
// complète du dataset. Une période inversée ou incomplète n'est jamais une
// erreur pour l'appelant (contrat InvalidRange: récupération locale)
func (d *Dataset) ResolveRange(start, end time.Time) shareddomain.DateRange {
	if dr, err := shareddomain.NewDateRange(start, end); err == nil {
		return dr
	}
	if full, ok := d.FullRange(); ok {
		return full
	}
	return shareddomain.DateRange{}
}

// Filter retourne un nouveau Dataset restreint à la période donnée
// Pur: le dataset d'origine n'est jamais modifié; filtrer deux fois avec la
// même période est idempotent
func (d *Dataset) Filter(dr shareddomain.DateRange) *Dataset {
	filtered := make([]OrderItemRecord, 0, len(d.records))
	for _, r := range d.records {
		if dr.Contains(r.PurchaseTimestamp) {
			filtered = append(filtered, r)
		}
	}

	// Déjà trié: on reconstruit sans repasser par le tri
	return &Dataset{
		records:     filtered,
		source:      d.source,
		droppedRows: d.droppedRows,
	}
}
