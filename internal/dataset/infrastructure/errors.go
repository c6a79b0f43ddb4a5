package infrastructure

import (
	"fmt"
	"strings"
)

// MalformedInputError signale des colonnes requises absentes du dataset
// Erreur fatale: levée avant toute agrégation, jamais récupérée silencieusement
// (agréger un schéma partiel produirait des résultats faux sans prévenir)
type MalformedInputError struct {
	Source  string
	Missing []string
}

// Error implémente l'interface error
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: missing required columns: %s",
		e.Source, strings.Join(e.Missing, ", "))
}
