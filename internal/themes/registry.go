// Package themes holds the static story theme registry. Themes are seed
// data: the lookup table is built once at startup and never mutated.
package themes

import (
	"sort"

	"storybook-server/internal/models"
)

// registry is keyed by theme ID. Adding a theme means adding an entry here;
// no other code changes are required.
var registry = map[string]models.Theme{
	"brave-steps": {
		ID:            "brave-steps",
		Title:         "Brave Steps",
		Description:   "Help your child overcome their fear of wearing shoes through a magical adventure story.",
		AgeRange:      models.AgeRange{Min: 2, Max: 6},
		EstimatedTime: "2-3 minutes",
		PageCount:     8,
		Template: `Once upon a time, there was a wonderful child named {childName}, who was {childAge} years old. {childName} lived with {parentNames} and loved playing with {favoriteToys}.

One sunny morning, {childName} woke up and saw their beautiful shoes waiting by the bed. But something felt scary about putting them on. The shoes seemed so big and different!

{parentName} came over with a gentle smile. "These shoes will help you run and play and go on adventures," they said softly. But {childName} wasn't so sure.

{childName} thought about all the fun things they loved to do - {hobbies}. Maybe shoes could help with these activities?

With a deep breath, {childName} decided to try. First one foot, then the other. The shoes felt different, but not scary at all!

Soon {childName} was walking, then running, then dancing in their new shoes. They realized shoes weren't scary - they were magical helpers for big adventures!

From that day on, {childName} loved wearing shoes and went on many wonderful adventures with {parentNames}.`,
		ImagePrompts: []string{
			"A happy {childAge}-year-old child named {childName} waking up in bed, with shoes visible nearby, warm and cozy bedroom",
			"The same child looking hesitant at a pair of colorful shoes, gentle morning sunlight streaming through window",
			"A loving parent or guardian sitting with {childName}, showing the shoes with patience and kindness",
			"{childName} thinking about their favorite activities - {hobbies}, thought bubbles showing fun activities",
			"{childName} carefully putting on one shoe, showing determination and bravery",
			"{childName} taking first steps in both shoes, looking surprised and pleased",
			"{childName} running and playing happily in their shoes, full of joy and confidence",
			"{childName} with their family, all smiling together, {childName} proudly wearing their shoes",
		},
	},
	"sweet-dreams-solo": {
		ID:            "sweet-dreams-solo",
		Title:         "Sweet Dreams Solo",
		Description:   "A gentle story about learning to sleep independently in their own bed.",
		AgeRange:      models.AgeRange{Min: 3, Max: 7},
		EstimatedTime: "2-3 minutes",
		PageCount:     8,
		Template: `Meet {childName}, a brave {childAge}-year-old who loved bedtime stories and playing with {favoriteToys}. {childName} lived in a cozy home with {parentNames}.

Every night, {childName} would snuggle close to {parentName} at bedtime. But lately, {childName} had been wondering what it would be like to sleep in their very own bed, all by themselves.

The bedroom looked so big and quiet when the lights went dim. {childName} felt a little nervous about sleeping alone. What if something happened? What if they got scared?

{parentName} sat on the edge of the bed. "You know, sleeping in your own bed means you're growing up to be very brave and independent," they said with pride.

{childName} thought about all the brave things they already did - {hobbies} and playing with friends. Maybe sleeping alone could be another brave adventure!

That night, {childName} tucked themselves in with their favorite stuffed animal. The room felt peaceful and safe. When morning came, {childName} felt so proud!

Now {childName} sleeps peacefully in their own bed every night, having the sweetest dreams and feeling very grown up.`,
		ImagePrompts: []string{
			"A cozy bedroom scene with {childName} and their parent reading bedtime stories together",
			"{childName} looking at their own bed thoughtfully, with favorite toys nearby in a warm bedroom",
			"The bedroom at twilight, showing {childName} feeling a bit uncertain about sleeping alone",
			"A loving parent sitting on the bed edge, having a gentle conversation with {childName}",
			"{childName} thinking about brave activities they do, with thought bubbles showing {hobbies}",
			"{childName} tucking themselves into bed with a favorite stuffed animal, looking determined",
			"{childName} sleeping peacefully in their own bed, with soft moonlight through the window",
			"{childName} waking up happy and proud in the morning, feeling accomplished and grown up",
		},
	},
	"brush-like-hero": {
		ID:            "brush-like-hero",
		Title:         "Brush Like a Hero",
		Description:   "Transform tooth brushing into an exciting superhero adventure.",
		AgeRange:      models.AgeRange{Min: 2, Max: 6},
		EstimatedTime: "2-3 minutes",
		PageCount:     8,
		Template: `This is the story of {childName}, a fantastic {childAge}-year-old who loved {hobbies} and playing with {favoriteToys}. {childName} lived with {parentNames} in a happy home.

Every morning and evening, there was one thing {childName} didn't enjoy very much - brushing teeth! The toothbrush seemed so boring, and it took so much time.

One day, {parentName} had a wonderful idea. "What if we pretend your toothbrush is a magic wand?" they suggested. "And you're a superhero fighting the cavity monsters!"

{childName}'s eyes lit up with excitement. A superhero? Fighting monsters? That sounded much more fun than just brushing teeth!

{parentName} showed {childName} how to hold the "magic toothbrush wand" and make special circular motions to defeat the cavity monsters hiding between teeth.

"Swish, swish, brush away!" {childName} chanted, moving the toothbrush like a real superhero. The cavity monsters didn't stand a chance!

After two whole minutes of superhero brushing, {childName} smiled in the mirror. Their teeth sparkled like stars!

Now {childName} brushes twice every day, proud to be a tooth-brushing superhero with the strongest, cleanest teeth in town!`,
		ImagePrompts: []string{
			"{childName} in their bathroom, looking unenthusiastic about a regular toothbrush on the counter",
			"A parent with {childName} in the bathroom, having an exciting conversation about superheroes",
			"{childName} holding a toothbrush like a magic wand, with sparkles around it, looking amazed",
			"{childName} as a superhero brushing teeth, with imaginary cavity monsters fleeing in fear",
			"{childName} making circular brushing motions, concentrated and determined like a real hero",
			"{childName} rinsing and swishing water, continuing the superhero tooth-brushing adventure",
			"{childName} smiling proudly in the bathroom mirror, showing off sparkly clean teeth",
			"{childName} in superhero pose with toothbrush, confident and happy about dental hygiene",
		},
	},
	"big-kid-potty": {
		ID:            "big-kid-potty",
		Title:         "Big Kid Potty",
		Description:   "An encouraging story about transitioning from diapers to using the potty.",
		AgeRange:      models.AgeRange{Min: 2, Max: 5},
		EstimatedTime: "2-3 minutes",
		PageCount:     8,
		Template: `Once there was a wonderful child named {childName}, who was {childAge} years old and loved {hobbies}. {childName} lived with {parentNames} and was growing bigger every day!

{childName} had been wearing diapers for a long time, but lately had been feeling curious about the big toilet that {parentNames} used. It looked so grown-up and important!

One morning, {parentName} said, "Would you like to try using the potty like a big kid?" {childName} felt excited but also a little nervous. It seemed like such a big step!

{parentName} showed {childName} a special potty seat that was just the right size. "This will help you feel safe and comfortable," they explained with a warm smile.

{childName} decided to be brave and give it a try. Sitting on the potty felt different, but not scary. {parentName} stayed close by for support and encouragement.

When {childName} successfully used the potty for the first time, everyone cheered! It felt amazing to do something so grown-up and independent.

Now {childName} uses the potty all by themselves, feeling proud and confident. Growing up feels wonderful when you have loving support from family!`,
		ImagePrompts: []string{
			"{childName} playing happily with toys, showing them as a confident, growing child",
			"{childName} looking curiously at a regular toilet, wondering about this grown-up thing",
			"A parent showing {childName} a child-sized potty seat, having an encouraging conversation",
			"{childName} approaching the potty seat with determination, parent nearby for support",
			"{childName} sitting on the potty seat, looking calm and focused, with patient parent nearby",
			"{childName} successfully using the potty, looking proud and accomplished",
			"Family celebration scene with {childName} beaming with pride, everyone cheering",
			"{childName} confidently using the potty independently, showing growth and maturity",
		},
	},
}

// Lookup возвращает тему по идентификатору.
// Returns models.ErrThemeNotFound for unknown IDs.
func Lookup(id string) (models.Theme, error) {
	theme, ok := registry[id]
	if !ok {
		return models.Theme{}, models.ErrThemeNotFound
	}
	return theme, nil
}

// All возвращает все темы, отсортированные по идентификатору.
func All() []models.Theme {
	all := make([]models.Theme, 0, len(registry))
	for _, theme := range registry {
		all = append(all, theme)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
