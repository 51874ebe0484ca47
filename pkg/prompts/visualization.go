package prompts

import (
	"fmt"
	"strings"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// BuildTaskSummary renders the matched tasks as the placement list embedded
// in the visualization instruction, one line per task.
func BuildTaskSummary(tasks []models.ProjectTask) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("- LIEU: %s | PRODUIT: %s (Ref: %s) | DETAILS: %s",
			t.Location, t.Name, t.Reference, t.Description))
	}
	return strings.Join(lines, "\n")
}

// BuildVisualizationInstruction creates the rendering instruction sent with
// the site photo and the product textures. The first image in the request is
// always the site photo; the following images are the textures, in task
// order.
func BuildVisualizationInstruction(taskSummary string) string {
	return fmt.Sprintf(`Tu es un moteur de rendu architectural de haute précision pour "Dessine moi un jardin".

PHOTO SOURCE : La première image fournie représente l'état actuel.
TEXTURES RÉELLES : Les images suivantes sont les textures réelles des matériaux sélectionnés.

MISSION : Génère un nouveau visuel HD en incrustant les TEXTURES RÉELLES sur la PHOTO SOURCE aux emplacements suivants :
%s

RÈGLES DE RENDU :
1. FIDÉLITÉ PHOTORÉALISTE : Le rendu doit ressembler à une photo réelle terminée.
2. ÉCLAIRAGE : Adapte la luminosité des textures à l'éclairage de la photo source.
3. PERSPECTIVE : Aligne parfaitement les matériaux sur les lignes de fuite existantes.
4. PROPRETÉ : Supprime visuellement les éléments de chantier ou les zones dégradées remplacées par les nouveaux matériaux.`, taskSummary)
}
