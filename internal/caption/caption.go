// Package caption produces the French short-form caption text written next
// to every generated clip. Two flavors exist: the retention caption used at
// clip creation time and the shorter hook text used by the caption backfill
// command.
package caption

import (
	"math/rand"
	"strings"

	"buzzcut/internal/buzz"
)

type vibe struct {
	tension  []string
	question string
}

// categoryVibes keys on the root category, the part before the first slash.
var categoryVibes = map[string]vibe{
	"ADVENTURE": {
		tension: []string{
			"C’est là que tout a failli basculer 😳",
			"Ils ne savaient pas si ça allait passer…",
			"À ce moment précis, tout pouvait s’arrêter.",
		},
		question: "Tu aurais tenu jusqu’au bout ?",
	},
	"CHALLENGE": {
		tension: []string{
			"Peu de gens auraient été capables de faire ça.",
			"C’est là que le mental fait la différence.",
			"Tout se joue ici.",
		},
		question: "Tu aurais réussi ?",
	},
	"REACTION": {
		tension: []string{
			"La réaction est complètement folle 😭",
			"Personne ne s’attendait à ça.",
			"Regarde bien sa tête…",
		},
		question: "T’aurais réagi comment ?",
	},
	"LIFESTYLE": {
		tension: []string{
			"Ce moment dit beaucoup plus qu’on le croit.",
			"C’est plus profond que ça en a l’air.",
			"Peu de gens parlent de ça.",
		},
		question: "T’en penses quoi ?",
	},
	"BUSINESS": {
		tension: []string{
			"C’est exactement là que tout a changé.",
			"Cette décision a tout déclenché.",
			"Peu de gens comprennent ça.",
		},
		question: "Tu ferais pareil ?",
	},
	"MINDSET": {
		tension: []string{
			"C’est là que le déclic se fait.",
			"Ce moment peut vraiment changer ta vision.",
			"Tout est une question de mental.",
		},
		question: "T’es d’accord avec lui ?",
	},
	"OPINION": {
		tension: []string{
			"Cette opinion divise énormément.",
			"Beaucoup ne seront pas d’accord.",
			"Ça risque de faire débat.",
		},
		question: "Tu valides ou pas ?",
	},
	"ENTERTAINMENT": {
		tension: []string{
			"Ça part complètement en vrille 😭",
			"Personne n’avait vu ça venir.",
			"Ce moment est trop drôle.",
		},
		question: "T’as ri toi aussi ?",
	},
}

const (
	fallbackTension  = "Regarde bien ce qui se passe 👀"
	fallbackQuestion = "Attends la fin."
)

// Generator produces caption text. The random source is injectable so tests
// can pin the tension line choice.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator drawing tension lines from rng. A nil
// rng always picks the first line of each vibe.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Retention builds the three-line retention caption: a category tension
// line, an engagement question and a swipe-stopping call to action. High
// intensity or a high clip score shouts the tension line.
func (g *Generator) Retention(tier buzz.Tier, category string, intensity, clipScore float64) string {
	root := rootCategory(category)

	tension := fallbackTension
	question := fallbackQuestion
	if v, ok := categoryVibes[root]; ok {
		tension = g.pick(v.tension)
		question = v.question
	}

	if intensity > 0.85 || clipScore > 80 {
		tension = strings.ToUpper(tension)
	}

	cta := "Attends la fin."
	if tier == buzz.TierBuzzing {
		cta = "Ne swipe pas."
	}

	return tension + "\n" + question + "\n" + cta
}

// Hook builds the short TikTok/Snap text used by the caption backfill: an
// intensity hook, category emojis, a light call to action and hashtags.
func Hook(intensity float64, tier buzz.Tier, category string) string {
	category = strings.ToUpper(category)

	var hook string
	switch {
	case intensity >= 4:
		hook = "ATTENDS LA FIN 😳"
	case intensity >= 3:
		hook = "TU VAS PAS T’Y ATTENDRE 🔥"
	default:
		hook = "PERSONNE S’ATTENDAIT À ÇA 👀"
	}
	if tier == buzz.TierBuzzing {
		hook += " (ÇA EXPLOSE)"
	}

	var emojis string
	switch {
	case strings.Contains(category, "ADVENTURE"), strings.Contains(category, "CHALLENGE"):
		emojis = "🔥🏕️😱"
	case strings.Contains(category, "REACTION"), strings.Contains(category, "ENTERTAINMENT"):
		emojis = "😂😳🎭"
	case strings.Contains(category, "BUSINESS"), strings.Contains(category, "MINDSET"):
		emojis = "🧠💸📈"
	case strings.Contains(category, "LIFESTYLE"), strings.Contains(category, "LUXE"):
		emojis = "💎🚗✨"
	default:
		emojis = "👀🎬🔥"
	}

	return emojis + "\n\n" + hook + "\n\n👉 Dis-moi ce que t’en penses\n\n#fyp #viral #buzz #shorts"
}

func (g *Generator) pick(lines []string) string {
	if len(lines) == 0 {
		return fallbackTension
	}
	if g.rng == nil {
		return lines[0]
	}
	return lines[g.rng.Intn(len(lines))]
}

func rootCategory(category string) string {
	root, _, _ := strings.Cut(category, "/")
	return strings.ToUpper(strings.TrimSpace(root))
}
