package session

import "github.com/goliatone/go-reportgen/pkg/model"

const (
	// TargetLead addresses the fixed hospital section.
	TargetLead = "lead"
	// TargetTrail addresses the fixed discharge section.
	TargetTrail = "trail"
)

// LeadDefinition is the fixed "Hopital" section shown before every instance.
func LeadDefinition() model.FieldSetDefinition {
	return model.FieldSetDefinition{
		ID:        "hopital",
		Title:     "Hopital",
		Separator: "\n",
		Fields: []model.FieldDefinition{
			{
				Category: "Hopital",
				Kind:     model.FieldKindSingle,
				Options:  []string{"Ocean Medical Center", "Paleto Medical Center"},
				Template: "Arrivé sur les lieux (appel dispatch) \n" +
					"Réanimation sur les lieux \n" +
					"Premier diagnostic de la douleur et de l’état du patient\n" +
					"Stabilisation de la victime puis évacuation vers {hopital}",
			},
		},
	}
}

// TrailDefinition is the fixed "Sortie" section shown after every instance.
func TrailDefinition() model.FieldSetDefinition {
	return model.FieldSetDefinition{
		ID:        "sortie",
		Title:     "Sortie",
		Separator: "\n",
		Fields: []model.FieldDefinition{
			{
				Category: "Chambre",
				Kind:     model.FieldKindMulti,
				Options:  []string{"salle de réveil WARD", "chambre d'hospitalisation"},
				Template: "Déplacement du patient dans {chambre}",
			},
			{
				Category: "Papiers",
				Kind:     model.FieldKindMulti,
				Options:  []string{"l'ordonnance", "l'arrêt de travail"},
				Template: "Vérifications des constantes du patient\nTransmission de {papiers}",
			},
			{
				Category: "Depart",
				Kind:     model.FieldKindSingle,
				Options:  []string{"Départ du Centre Hospitalier", "Hospitalisation"},
				Template: "{depart} du patient",
			},
		},
	}
}
