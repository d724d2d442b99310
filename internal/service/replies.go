package service

import (
	"context"
	"fmt"
	"strings"

	"railchat/internal/model"
	"railchat/internal/utils"
)

// HelpText is returned for the "aide" and "help" literals
const HelpText = `Je peux vous renseigner sur les trains entre les gares que je connais.
Exemples de questions :
  • Je veux réserver un billet de Paris à Lyon
  • Quels sont les horaires entre Marseille et Lille ?
  • Donne-moi des informations sur la gare de Bordeaux
  • Affiche la liste de tous les trains
  • Combien coûte un trajet de Paris à Lyon ?
  • Quelles lignes desservent Marseille ?
Tapez « quitter » pour sortir.`

const (
	msgNotUnderstood = "Désolé, je n'ai pas compris votre demande. Tapez « aide » pour voir des exemples."
	msgUnavailable   = "Le service est momentanément indisponible, merci de réessayer plus tard."
)

func routeFilter(entities []string) model.TrainFilter {
	switch len(entities) {
	case 0:
		return model.TrainFilter{}
	case 1:
		return model.TrainFilter{DepartureLike: entities[0]}
	default:
		return model.TrainFilter{DepartureLike: entities[0], ArrivalLike: entities[1]}
	}
}

func routeLabel(entities []string) string {
	switch len(entities) {
	case 0:
		return ""
	case 1:
		return " au départ de " + utils.DisplayName(entities[0])
	default:
		return fmt.Sprintf(" de %s à %s", utils.DisplayName(entities[0]), utils.DisplayName(entities[1]))
	}
}

func formatTrain(t model.Train) string {
	line := t.LineName
	if line == "" {
		line = "ligne inconnue"
	}
	return fmt.Sprintf("• %s (%s) %s → %s, %d places", t.Number, line, t.Departure, t.Arrival, t.Seats)
}

func (a *Assistant) replyReservation(ctx context.Context, entities []string) string {
	if len(entities) < 2 {
		return "Pour réserver, indiquez une gare de départ et une gare d'arrivée, par exemple « réserver un billet de Paris à Lyon »."
	}

	ctx, cancel := a.storeContext(ctx)
	defer cancel()

	trains, err := a.store.ListTrains(ctx, routeFilter(entities))
	if err != nil {
		return a.degraded(err, model.IntentReservation, entities)
	}
	if len(trains) == 0 {
		return fmt.Sprintf("Aucun train trouvé%s.", routeLabel(entities))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Trains disponibles%s :\n", routeLabel(entities))
	for _, t := range trains {
		b.WriteString(formatTrain(t))
		b.WriteByte('\n')
	}
	b.WriteString("Connectez-vous pour réserver une place sur l'un de ces trains.")
	return b.String()
}

func (a *Assistant) replySchedules(ctx context.Context, entities []string) string {
	if len(entities) < 2 {
		return "Pour consulter les horaires, indiquez une gare de départ et une gare d'arrivée, par exemple « horaires de Marseille à Lille »."
	}

	ctx, cancel := a.storeContext(ctx)
	defer cancel()

	trains, err := a.store.ListTrains(ctx, routeFilter(entities))
	if err != nil {
		return a.degraded(err, model.IntentSchedule, entities)
	}

	var b strings.Builder
	found := 0
	for _, t := range trains {
		schedules, err := a.store.ListSchedules(ctx, model.ScheduleFilter{TrainID: t.ID})
		if err != nil {
			return a.degraded(err, model.IntentSchedule, entities)
		}
		if len(schedules) == 0 {
			continue
		}

		times := make([]string, 0, len(schedules))
		for _, s := range schedules {
			times = append(times, model.FormatClock(s.DepartureTime)+" → "+model.FormatClock(s.ArrivalTime))
		}
		fmt.Fprintf(&b, "• %s %s → %s : %s\n", t.Number, t.Departure, t.Arrival, strings.Join(times, ", "))
		found++
	}

	if found == 0 {
		return fmt.Sprintf("Aucun horaire trouvé%s.", routeLabel(entities))
	}
	return fmt.Sprintf("Horaires%s :\n%s", routeLabel(entities), strings.TrimRight(b.String(), "\n"))
}

func (a *Assistant) replyInformation(ctx context.Context, entities []string) string {
	if len(entities) == 0 {
		return "Sur quelle gare souhaitez-vous des informations ? Par exemple « informations sur la gare de Nice »."
	}

	ctx, cancel := a.storeContext(ctx)
	defer cancel()

	parts := make([]string, 0, len(entities))
	for _, station := range entities {
		departures, err := a.store.ListTrains(ctx, model.TrainFilter{DepartureLike: station})
		if err != nil {
			return a.degraded(err, model.IntentInformation, entities)
		}
		arrivals, err := a.store.ListTrains(ctx, model.TrainFilter{ArrivalLike: station})
		if err != nil {
			return a.degraded(err, model.IntentInformation, entities)
		}
		lines, err := a.stationLines(ctx, station)
		if err != nil {
			return a.degraded(err, model.IntentInformation, entities)
		}

		info := fmt.Sprintf("Gare de %s : %d train(s) au départ, %d train(s) à l'arrivée.",
			utils.DisplayName(station), len(departures), len(arrivals))
		if len(lines) > 0 {
			info += " Lignes : " + joinLineNames(lines) + "."
		} else {
			info += " Aucune ligne ne dessert cette gare pour le moment."
		}
		parts = append(parts, info)
	}

	return strings.Join(parts, "\n")
}

func (a *Assistant) replyListing(ctx context.Context, entities []string) string {
	ctx, cancel := a.storeContext(ctx)
	defer cancel()

	trains, err := a.store.ListTrains(ctx, routeFilter(entities))
	if err != nil {
		return a.degraded(err, model.IntentListing, entities)
	}
	if len(trains) == 0 {
		return fmt.Sprintf("Aucun train trouvé%s.", routeLabel(entities))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d train(s)%s :", len(trains), routeLabel(entities))
	for _, t := range trains {
		b.WriteByte('\n')
		b.WriteString(formatTrain(t))
	}
	return b.String()
}

func (a *Assistant) replyPrices(ctx context.Context, entities []string) string {
	ctx, cancel := a.storeContext(ctx)
	defer cancel()

	fares, err := a.store.ListFares(ctx, routeFilter(entities))
	if err != nil {
		return a.degraded(err, model.IntentPrice, entities)
	}
	if len(fares) == 0 {
		return fmt.Sprintf("Aucun tarif disponible%s.", routeLabel(entities))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tarifs%s :", routeLabel(entities))
	for _, f := range fares {
		if f.MinPrice == f.MaxPrice {
			fmt.Fprintf(&b, "\n• %s %s → %s : %.2f €", f.Number, f.Departure, f.Arrival, f.MinPrice)
			continue
		}
		fmt.Fprintf(&b, "\n• %s %s → %s : de %.2f € à %.2f €", f.Number, f.Departure, f.Arrival, f.MinPrice, f.MaxPrice)
	}
	return b.String()
}

func (a *Assistant) replyLines(ctx context.Context, entities []string) string {
	ctx, cancel := a.storeContext(ctx)
	defer cancel()

	var (
		lines []model.Line
		err   error
	)
	if len(entities) == 1 {
		lines, err = a.stationLines(ctx, entities[0])
	} else {
		lines, err = a.store.ListLines(ctx, routeFilter(entities))
	}
	if err != nil {
		return a.degraded(err, model.IntentLines, entities)
	}

	label := routeLabel(entities)
	if len(entities) == 1 {
		label = " desservant " + utils.DisplayName(entities[0])
	}
	if len(lines) == 0 {
		return fmt.Sprintf("Aucune ligne trouvée%s.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lignes%s :", label)
	for _, l := range lines {
		if l.Company != "" {
			fmt.Fprintf(&b, "\n• %s (%s)", l.Name, l.Company)
			continue
		}
		fmt.Fprintf(&b, "\n• %s", l.Name)
	}
	return b.String()
}

// stationLines returns the distinct lines with a train leaving or reaching station
func (a *Assistant) stationLines(ctx context.Context, station string) ([]model.Line, error) {
	from, err := a.store.ListLines(ctx, model.TrainFilter{DepartureLike: station})
	if err != nil {
		return nil, err
	}
	to, err := a.store.ListLines(ctx, model.TrainFilter{ArrivalLike: station})
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(from)+len(to))
	lines := make([]model.Line, 0, len(from)+len(to))
	// from and to may be shared cache entries and must stay untouched
	for _, group := range [][]model.Line{from, to} {
		for _, l := range group {
			if _, dup := seen[l.ID]; dup {
				continue
			}
			seen[l.ID] = struct{}{}
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func joinLineNames(lines []model.Line) string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}
