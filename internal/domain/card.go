package domain

import (
	"strings"
)

// Kind is the category of a card.
type Kind uint8

const (
	// KindHidden marks a card rendered face down for another player.
	KindHidden Kind = iota
	// KindTreatment is a special-effect card not tied to an organ.
	KindTreatment
	// KindMedicine cures or protects an organ.
	KindMedicine
	// KindOrgan starts a new organ stack.
	KindOrgan
	// KindVirus infects or destroys an organ.
	KindVirus
)

func (k Kind) String() string {
	switch k {
	case KindTreatment:
		return "treatment"
	case KindMedicine:
		return "medicine"
	case KindOrgan:
		return "organ"
	case KindVirus:
		return "virus"
	default:
		return "hidden"
	}
}

// Tag is the body part a medicine, organ or virus card belongs to.
type Tag uint8

const (
	TagNone Tag = iota
	TagWildcard
	TagBone
	TagHeart
	TagBrain
	TagStomach
)

// Card is a card identity from the fixed catalog. Many physical cards share an identity.
type Card uint8

const (
	// NoCard is the zero value; it never appears in a deck.
	NoCard Card = iota
	CardHidden

	TreatmentAllDiscard
	TreatmentInfectAll
	TreatmentSingleTransplant
	TreatmentTotalTransplant
	TreatmentOrganTheft

	MedicineWildcard
	MedicineBone
	MedicineHeart
	MedicineBrain
	MedicineStomach

	OrganWildcard
	OrganBone
	OrganHeart
	OrganBrain
	OrganStomach

	VirusWildcard
	VirusBone
	VirusHeart
	VirusBrain
	VirusStomach

	cardLimit
)

// DeckSize is the number of physical cards in a full deck.
const DeckSize = 65

type cardInfo struct {
	name  string
	kind  Kind
	tag   Tag
	count int
	title string
	help  string
}

var catalog = [cardLimit]cardInfo{
	CardHidden: {"HIDDEN", KindHidden, TagNone, 0, "Hidden", "This card is hidden and you cannot see it..."},

	TreatmentAllDiscard:       {"TREATMENT_ALL_DISCARD", KindTreatment, TagNone, 1, "Discard everything!", "Use this card and every other player loses the cards in their hand!"},
	TreatmentInfectAll:        {"TREATMENT_INFECT_ALL", KindTreatment, TagNone, 2, "Contagion!", "Use this card and every virus on your organs jumps at random to the other players, whenever possible."},
	TreatmentSingleTransplant: {"TREATMENT_SINGLE_TRANSPLANT", KindTreatment, TagNone, 3, "Organ swap!", "Keep this card in your hand, then drop one of your organs on another player's organ and they will be exchanged!"},
	TreatmentTotalTransplant:  {"TREATMENT_TOTAL_TRANSPLANT", KindTreatment, TagNone, 1, "Total transplant!", "Play this card on a player and all of your organs will be exchanged!"},
	TreatmentOrganTheft:       {"TREATMENT_ORGAN_THEFT", KindTreatment, TagNone, 3, "Organ theft!", "Play this card on another player's organ and it becomes yours!"},

	MedicineWildcard: {"MEDICINE_WILDCARD", KindMedicine, TagWildcard, 1, "Wildcard medicine", "Apply this medicine to any of your sick organs to cure it!"},
	MedicineBone:     {"MEDICINE_BONE", KindMedicine, TagBone, 4, "Bandages", "Apply this medicine to your sick bone to cure it!"},
	MedicineHeart:    {"MEDICINE_HEART", KindMedicine, TagHeart, 4, "Vaccine", "Apply this medicine to your sick heart to cure it!"},
	MedicineBrain:    {"MEDICINE_BRAIN", KindMedicine, TagBrain, 4, "Pills", "Apply this medicine to your sick brain to cure it!"},
	MedicineStomach:  {"MEDICINE_STOMACH", KindMedicine, TagStomach, 4, "Syrup", "Apply this medicine to your sick stomach to cure it!"},

	OrganWildcard: {"ORGAN_WILDCARD", KindOrgan, TagWildcard, 1, "Wildcard organ", "Play this card on YOUR PLAYER to get one more organ. Collect four healthy ones to win! It stands in for any organ you are missing."},
	OrganBone:     {"ORGAN_BONE", KindOrgan, TagBone, 5, "Bone", "Play this card on YOUR PLAYER to get one more organ. Collect four healthy ones to win!"},
	OrganHeart:    {"ORGAN_HEART", KindOrgan, TagHeart, 5, "Heart", "Play this card on YOUR PLAYER to get one more organ. Collect four healthy ones to win!"},
	OrganBrain:    {"ORGAN_BRAIN", KindOrgan, TagBrain, 5, "Brain", "Play this card on YOUR PLAYER to get one more organ. Collect four healthy ones to win!"},
	OrganStomach:  {"ORGAN_STOMACH", KindOrgan, TagStomach, 5, "Stomach", "Play this card on YOUR PLAYER to get one more organ. Collect four healthy ones to win!"},

	VirusWildcard: {"VIRUS_WILDCARD", KindVirus, TagWildcard, 1, "Wildcard virus", "Apply this virus to any of your opponents' organs to make it sick!"},
	VirusBone:     {"VIRUS_BONE", KindVirus, TagBone, 4, "Bone virus", "Apply this virus to your opponents' bone to make it sick!"},
	VirusHeart:    {"VIRUS_HEART", KindVirus, TagHeart, 4, "Heart virus", "Apply this virus to your opponents' heart to make it sick!"},
	VirusBrain:    {"VIRUS_BRAIN", KindVirus, TagBrain, 4, "Brain virus", "Apply this virus to your opponents' brain to make it sick!"},
	VirusStomach:  {"VIRUS_STOMACH", KindVirus, TagStomach, 4, "Stomach virus", "Apply this virus to your opponents' stomach to make it sick!"},
}

// acceptance[host][guest] reports whether a host kind may receive a guest kind.
var acceptance = [KindVirus + 1][KindVirus + 1]bool{
	KindOrgan:    {KindVirus: true, KindMedicine: true},
	KindVirus:    {KindMedicine: true},
	KindMedicine: {KindVirus: true},
}

var cardsByName = func() map[string]Card {
	m := make(map[string]Card, len(catalog))
	for c := CardHidden; c < cardLimit; c++ {
		m[catalog[c].name] = c
	}
	return m
}()

// ParseCard resolves a card name. Lookup ignores case and surrounding spaces.
func ParseCard(name string) (Card, error) {
	c, ok := cardsByName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok || c == CardHidden {
		return NoCard, Validationf("'%s' does not look like a card", name)
	}
	return c, nil
}

func (c Card) valid() bool { return c > NoCard && c < cardLimit }

func (c Card) info() cardInfo {
	if !c.valid() {
		return cardInfo{name: "NONE"}
	}
	return catalog[c]
}

// String returns the wire name of the card.
func (c Card) String() string { return c.info().name }

// Title returns the display name of the card.
func (c Card) Title() string { return c.info().title }

// Help explains how the card is played.
func (c Card) Help() string { return c.info().help }

// Kind returns the card category.
func (c Card) Kind() Kind { return c.info().kind }

// Tag returns the body part of the card, TagNone for treatments.
func (c Card) Tag() Tag { return c.info().tag }

func (c Card) IsOrgan() bool     { return c.Kind() == KindOrgan }
func (c Card) IsVirus() bool     { return c.Kind() == KindVirus }
func (c Card) IsMedicine() bool  { return c.Kind() == KindMedicine }
func (c Card) IsTreatment() bool { return c.Kind() == KindTreatment }
func (c Card) IsWildcard() bool  { return c.Tag() == TagWildcard }

// Admits reports whether card c can receive card other: organs take viruses
// and medicines, viruses and medicines take each other. Wildcards match any tag.
func (c Card) Admits(other Card) bool {
	if !c.valid() || !other.valid() || !acceptance[c.Kind()][other.Kind()] {
		return false
	}
	return c.IsWildcard() || other.IsWildcard() || c.Tag() == other.Tag()
}

// MarshalText encodes the card by name.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a card name. Hidden is accepted so views round-trip.
func (c *Card) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), catalog[CardHidden].name) {
		*c = CardHidden
		return nil
	}
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Organs returns every organ identity, wildcard first.
func Organs() []Card {
	return []Card{OrganWildcard, OrganBone, OrganHeart, OrganBrain, OrganStomach}
}

// CatalogEntry describes one card identity of the deck.
type CatalogEntry struct {
	Card  Card   `json:"card"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Help  string `json:"help"`
	Count int    `json:"count"`
}

// Catalog lists every playable card identity with its number of copies.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(catalog))
	for c := TreatmentAllDiscard; c < cardLimit; c++ {
		info := catalog[c]
		out = append(out, CatalogEntry{Card: c, Kind: info.kind.String(), Title: info.title, Help: info.help, Count: info.count})
	}
	return out
}

// NewDeck returns the full 65-card deck in catalog order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for c := TreatmentAllDiscard; c < cardLimit; c++ {
		for i := 0; i < catalog[c].count; i++ {
			deck = append(deck, c)
		}
	}
	return deck
}
