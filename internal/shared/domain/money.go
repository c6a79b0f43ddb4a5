package domain

import (
	"errors"
	"fmt"
)

// Money représente une valeur monétaire avec garanties d'invariants
// Le dataset Olist est libellé en réal brésilien, d'où la devise par défaut
type Money struct {
	amount   float64
	currency string
}

// DefaultCurrency devise des montants du dataset source
const DefaultCurrency = "BRL"

// NewMoney crée une nouvelle instance de Money avec validation
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// MustNewMoney crée un Money en paniquant si invalide
// Réservé aux montants dont l'invariant est déjà garanti (sommes de prix >= 0)
func MustNewMoney(amount float64, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("invalid money: %v", err))
	}
	return m
}

// BRL crée un montant dans la devise du dataset
func BRL(amount float64) Money {
	return MustNewMoney(amount, DefaultCurrency)
}

// Amount retourne le montant
func (m Money) Amount() float64 {
	return m.amount
}

// Currency retourne la devise
func (m Money) Currency() string {
	return m.currency
}

// Add additionne deux Money (même devise requise)
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// IsZero vérifie si le montant est zéro
func (m Money) IsZero() bool {
	return m.amount == 0
}
