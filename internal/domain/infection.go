package domain

// spreadInfection moves the actor's viruses onto opponents' organs one at a
// time until no virus can move, returning how many moved. Each virus is
// taken off the actor's stack it came from; viruses landing on opponents are
// never moved again.
func (g *Game) spreadInfection(actor *Player) int {
	moved := 0
	for g.spreadOne(actor) {
		moved++
	}
	return moved
}

type infectedOrgan struct {
	organ Card
	virus Card
}

func (g *Game) spreadOne(actor *Player) bool {
	var sources []infectedOrgan
	for _, s := range actor.stacks {
		for _, c := range s {
			if c.IsVirus() {
				sources = append(sources, infectedOrgan{organ: s.Organ(), virus: c})
			}
		}
	}
	g.rng.Shuffle(len(sources), func(i, j int) { sources[i], sources[j] = sources[j], sources[i] })

	others := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p != actor {
			others = append(others, p)
		}
	}

	for _, src := range sources {
		g.rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
		for _, t := range others {
			organs := Organs()
			g.rng.Shuffle(len(organs), func(i, j int) { organs[i], organs[j] = organs[j], organs[i] })
			for _, organ := range organs {
				i, how, err := g.checkVirus(t, src.virus, organ)
				if err != nil {
					continue
				}
				g.liftVirus(actor, src)
				g.placeVirus(t, i, src.virus, how)
				return true
			}
		}
	}
	return false
}

// liftVirus removes src.virus from the actor's stack of src.organ.
func (g *Game) liftVirus(actor *Player, src infectedOrgan) {
	si, err := actor.stackIndex(src.organ)
	if err != nil {
		return
	}
	s := actor.stacks[si]
	for j, c := range s {
		if c == src.virus {
			actor.stacks[si] = s.without(j)
			return
		}
	}
}
