package domain

import (
	"errors"
	"time"
)

// Day normalise un instant vers sa date calendaire (minuit UTC)
// Toutes les comparaisons de dates du dashboard passent par cette
// normalisation: l'heure et le fuseau d'origine sont volontairement écartés
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay vérifie si deux instants tombent sur la même date calendaire
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DateRange représente une période [start, end] à granularité jour
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable: pas de setters, valeurs fixées à la création
//   - Validation dans le constructeur (NewDateRange)
//   - Bornes inclusives des deux côtés
type DateRange struct {
	start time.Time // normalisé via Day()
	end   time.Time
}

// ErrInvalidRange signale une période incomplète ou inversée
// Le filtre de dates le traite localement (repli sur la période complète
// du dataset), il ne remonte jamais jusqu'à la couche de présentation
var ErrInvalidRange = errors.New("invalid date range")

// NewDateRange crée un DateRange borné par deux dates calendaires
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidRange
	}
	s, e := Day(start), Day(end)
	if s.After(e) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

// Start retourne la date de début (minuit UTC)
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin (minuit UTC)
func (dr DateRange) End() time.Time {
	return dr.end
}

// Contains vérifie si un instant tombe dans la période, à granularité jour
// Un achat le jour de début ou le jour de fin est retenu
func (dr DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(dr.start) && !d.After(dr.end)
}

// Days retourne le nombre de jours couverts par la période (au moins 1)
func (dr DateRange) Days() int {
	return int(dr.end.Sub(dr.start).Hours()/24) + 1
}

// Equal compare deux périodes par valeur
func (dr DateRange) Equal(other DateRange) bool {
	return dr.start.Equal(other.start) && dr.end.Equal(other.end)
}

// IsZero vérifie si la période n'a pas été initialisée
func (dr DateRange) IsZero() bool {
	return dr.start.IsZero() && dr.end.IsZero()
}
