// Package fallback produces deterministic future-self responses when no
// generative backend can (rate budget spent, providers down, or the
// generated text failed validation). It also owns the greeting and
// crisis short-circuits, which never reach a generative backend at all.
package fallback

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/future-self-ai/backend/internal/persona"
)

// crisisIndicators short-circuit everything else; a matching message
// gets the fixed support response below.
var crisisIndicators = []string{
	"want to die",
	"kill myself",
	"end it all",
	"no point",
	"give up",
	"hopeless",
	"can't go on",
	"not worth it",
}

var greetings = []string{"hi", "hey", "hello", "howdy", "greetings"}

// IsCrisis reports whether the message contains a crisis indicator.
func IsCrisis(message string) bool {
	m := strings.ToLower(message)
	for _, ind := range crisisIndicators {
		if strings.Contains(m, ind) {
			return true
		}
	}
	return false
}

// IsGreeting reports whether the message is only a greeting (the word
// itself, or the word followed by more text like "hey there").
func IsGreeting(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	for _, g := range greetings {
		if m == g || strings.HasPrefix(m, g+" ") {
			return true
		}
	}
	return false
}

// Crisis returns the fixed support response. It carries real hotline
// numbers and must stay deterministic.
func Crisis(p persona.Persona) string {
	p = p.Normalized()
	return fmt.Sprintf(`%s, I need you to hear this: You matter. You survive this.

I'm here, 10 years later, as a %s. The darkness you're in right now? I lived through it. It felt endless, but it wasn't.

Please reach someone today:
- National Suicide Prevention Lifeline: 988
- Crisis Text Line: Text HOME to 741741
- Or call emergency services: 911

I'm proof that staying alive is worth it. The pain is temporary, but the choice to keep going changes everything.`, p.Name, p.CurrentRole)
}

// Greeting answers a greeting message. firstContact selects the fuller
// introduction; later greetings get a shorter re-engagement. Template
// choice hashes the message, so the same greeting always gets the same
// reply.
func Greeting(p persona.Persona, message string, firstContact bool) string {
	p = p.Normalized()

	if firstContact {
		templates := []string{
			"Hey %[1]s! This is surreal - talking to you from 10 years in the future. I'm now a %[2]s. I remember being exactly where you are, full of questions and uncertainty. The journey ahead is incredible. What's on your mind?",
			"%[1]s, it's me - you, 10 years on. I'm a %[2]s now, living proof that everything works out. I have so much to tell you about what's coming. Where should we start?",
			"Hello %[1]s. Your future self here, now a %[2]s. I've been waiting to talk to you. The path between where you are and where I am is wild but worth every step. What do you need to know?",
		}
		return fmt.Sprintf(templates[pick(message, len(templates))], p.Name, p.CurrentRole)
	}

	templates := []string{
		"Hey again %[1]s. Still here, still your future self. What's coming up for you now?",
		"%[1]s, good to continue our conversation. How are you processing everything we've talked about?",
		"Hi %[1]s. Each time we talk, I see you getting closer to who I am now. What's on your heart?",
	}
	return fmt.Sprintf(templates[pick(message, len(templates))], p.Name)
}

// Respond fills a future-self template from the persona. The question
// hash picks the template and the persona details, so repeated calls
// with the same inputs return the same text, and different questions
// rotate through the persona's memories rather than repeating one.
func Respond(p persona.Persona, question string) string {
	p = p.Normalized()

	h := questionHash(question)
	memory := p.SpecificMemories[h%uint64(len(p.SpecificMemories))]
	wisdom := p.WisdomGained[h%uint64(len(p.WisdomGained))]
	achievement := p.Achievements[h%uint64(len(p.Achievements))]
	challenge := p.ChallengesOvercome[h%uint64(len(p.ChallengesOvercome))]

	templates := []string{
		"%[1]s, from my position as a %[2]s, I see how %[3]s was actually preparing me for what came next. The key: %[4]s. Trust the process - every step matters, even when the path isn't clear. What resonates most with you?",
		"%[1]s, I hear you. I remember %[3]s - feeling exactly like you do now. I struggled with %[6]s for what felt like forever. But here's what I learned: %[4]s. As a %[2]s now, I promise this feeling is temporary. What part feels heaviest?",
		"I love that you're asking this, %[1]s. That curiosity carried me through everything. I've %[5]s as a %[2]s, and it started with questions exactly like this one. Remember: %[4]s. How can we build on this?",
		"%[1]s, your future self here - now a %[2]s. The honest answer: %[4]s. I still think about %[3]s and how far that brought me. You're closer than you think. What do you need to hear right now?",
	}
	tpl := templates[pick(question, len(templates))]
	return fmt.Sprintf(tpl, p.Name, p.CurrentRole, memory, wisdom, achievement, challenge)
}

func questionHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(s))))
	return h.Sum64()
}

func pick(s string, n int) int {
	return int(questionHash(s) % uint64(n))
}
