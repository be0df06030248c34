package advisor

import (
	"fmt"
	"strings"

	"tableflip.dev/caddr/pkg/routine"
)

func advicePrompt(blocks []routine.Block, performance int) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		titles := make([]string, 0, len(b.Tasks))
		for _, t := range b.Tasks {
			titles = append(titles, t.Title)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", b.Title, strings.Join(titles, ", ")))
	}
	return fmt.Sprintf("En tant qu'expert en productivité pour l'application Caddr., analyse cette routine :\n%s\nPerformance : %d%%\n\n"+
		"Donne un conseil, une tâche \"Power Move\" et une citation motivante.",
		strings.Join(lines, "\n"), performance)
}

func reviewPrompt(completed []string, performance int, reflection string) string {
	return fmt.Sprintf("Analyse ma journée sur Caddr. :\nTâches complétées : %s\nScore global : %d%%\nMa réflexion : %q\n\n"+
		"Donne un feedback constructif et encourageant (max 150 caractères) et un \"Focus\" pour demain.",
		strings.Join(completed, ", "), performance, reflection)
}

func goalPrompt(goal string) string {
	return fmt.Sprintf("Crée une routine de performance sur Caddr. pour l'objectif suivant : %q.\n"+
		"Structure la réponse en blocs logiques (ex: Matin, Travail, Soir).\n"+
		"Chaque bloc doit avoir un titre et une liste de 3 à 5 tâches concrètes.", goal)
}

const imagePrompt = "Extrais les tâches de cette image pour l'application Caddr. et organise-les en blocs logiques avec des titres. " +
	"Si c'est une liste simple, crée un bloc 'Import Image'."
