// Package prompts builds the prompt texts sent to the generative models.
package prompts

import "fmt"

// QuoteExtractionSystem frames the extraction model as a quote analyst.
const QuoteExtractionSystem = `Tu es un assistant qui analyse des devis de paysagisme et en extrait les articles sous forme structurée. Réponds uniquement en JSON.`

// BuildQuoteExtractionPrompt creates the prompt for parsing a free-text
// landscaping quote into structured line items. The response contract is a
// JSON object {"tasks": [...]} with the four string keys per item.
func BuildQuoteExtractionPrompt(text string) string {
	return fmt.Sprintf(`Analyse ce texte de devis de paysagisme et extrais-le sous forme de liste structurée.
Texte: %q

Pour chaque article, identifie :
1. Reference: Code technique (ex: P2AA11489)
2. Name: Titre court du produit (ex: Panneau Bois Arifi)
3. Location: Où il est posé (ex: Mur mitoyen gauche)
4. Description: Détails comme quantités, dimensions.

Retourne un objet JSON avec une clé "tasks" contenant un tableau d'objets avec les clés: reference, name, location, description.`, text)
}
