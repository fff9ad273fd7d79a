package collector

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"DugoutEdge/internal/model"
)

const defaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports/baseball/mlb"

// ESPNSource fetches schedules, team results, and player stats from the
// public ESPN site API. It serves as both ScheduleSource and StatsSource.
type ESPNSource struct {
	BaseURL string
	Client  *http.Client
}

// NewESPNSource creates a source with optional proxy support.
func NewESPNSource(baseURL, proxyURL string) *ESPNSource {
	if baseURL == "" {
		baseURL = defaultESPNBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ESPNSource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *ESPNSource) Name() string { return "espn" }

// Scoreboard JSON shapes, trimmed to the fields we read.
type sbResponse struct {
	Events []sbEvent `json:"events"`
}

type sbEvent struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Status       sbStatus        `json:"status"`
	Competitions []sbCompetition `json:"competitions"`
}

type sbStatus struct {
	Type struct {
		Name string `json:"name"`
	} `json:"type"`
}

type sbCompetition struct {
	Venue struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
	Competitors []sbCompetitor `json:"competitors"`
}

type sbCompetitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Winner   bool   `json:"winner"`
	Score    string `json:"score"`
	Team     struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	ProbablePitcher struct {
		DisplayName string `json:"displayName"`
	} `json:"probablePitcher"`
}

// FetchSchedule returns today's slate from the scoreboard endpoint.
func (s *ESPNSource) FetchSchedule() ([]model.Event, error) {
	var sb sbResponse
	if err := s.getJSON(s.BaseURL+"/scoreboard", &sb); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	now := time.Now()
	events := make([]model.Event, 0, len(sb.Events))
	for _, e := range sb.Events {
		if len(e.Competitions) == 0 {
			continue
		}
		comp := e.Competitions[0]

		ev := model.Event{
			ID:        e.ID,
			Status:    mapStatus(e.Status.Type.Name),
			Venue:     comp.Venue.FullName,
			FetchedAt: now,
		}
		if t, err := time.Parse("2006-01-02T15:04Z", e.Date); err == nil {
			ev.StartTime = t
		}
		for _, c := range comp.Competitors {
			score, _ := strconv.Atoi(c.Score)
			if c.HomeAway == "home" {
				ev.HomeTeam = c.Team.Abbreviation
				ev.HomeScore = score
				ev.HomeStarter = c.ProbablePitcher.DisplayName
			} else {
				ev.AwayTeam = c.Team.Abbreviation
				ev.AwayScore = score
				ev.AwayStarter = c.ProbablePitcher.DisplayName
			}
		}
		if ev.HomeTeam == "" || ev.AwayTeam == "" {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func mapStatus(name string) model.GameStatus {
	switch name {
	case "STATUS_FINAL":
		return model.StatusFinal
	case "STATUS_IN_PROGRESS":
		return model.StatusInProgress
	default:
		return model.StatusScheduled
	}
}

// FetchRecentResults returns a team's completed games from its schedule
// endpoint, oldest first.
func (s *ESPNSource) FetchRecentResults(team string) ([]model.GameResult, error) {
	var sched sbResponse
	endpoint := fmt.Sprintf("%s/teams/%s/schedule", s.BaseURL, team)
	if err := s.getJSON(endpoint, &sched); err != nil {
		return nil, fmt.Errorf("fetch schedule for %s: %w", team, err)
	}

	var results []model.GameResult
	for _, e := range sched.Events {
		if mapStatus(e.Status.Type.Name) != model.StatusFinal || len(e.Competitions) == 0 {
			continue
		}
		r, ok := resultFor(team, e)
		if !ok {
			continue
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date.Before(results[j].Date) })
	return results, nil
}

func resultFor(team string, e sbEvent) (model.GameResult, bool) {
	var us, them *sbCompetitor
	for i := range e.Competitions[0].Competitors {
		c := &e.Competitions[0].Competitors[i]
		if c.Team.Abbreviation == team {
			us = c
		} else {
			them = c
		}
	}
	if us == nil || them == nil {
		return model.GameResult{}, false
	}

	scored, err1 := strconv.Atoi(us.Score)
	allowed, err2 := strconv.Atoi(them.Score)
	if err1 != nil || err2 != nil {
		return model.GameResult{}, false
	}
	r := model.GameResult{
		Opponent:    them.Team.Abbreviation,
		RunsScored:  scored,
		RunsAllowed: allowed,
		Won:         us.Winner,
	}
	if t, err := time.Parse("2006-01-02T15:04Z", e.Date); err == nil {
		r.Date = t
	}
	return r, true
}

// Team statistics JSON shapes.
type teamStatsResponse struct {
	Team struct {
		Record struct {
			Items []struct {
				Stats []namedStat `json:"stats"`
			} `json:"items"`
		} `json:"record"`
	} `json:"team"`
	Statistics []statCategory `json:"statistics"`
}

type statCategory struct {
	Name  string      `json:"name"`
	Stats []namedStat `json:"stats"`
}

type namedStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FetchSeasonStats returns a team's season record and batting rates.
// Missing stats stay zero; the form layer substitutes league averages.
func (s *ESPNSource) FetchSeasonStats(team string) (*model.TeamSeasonStats, error) {
	var ts teamStatsResponse
	endpoint := fmt.Sprintf("%s/teams/%s", s.BaseURL, team)
	if err := s.getJSON(endpoint, &ts); err != nil {
		return nil, fmt.Errorf("fetch team stats for %s: %w", team, err)
	}

	out := &model.TeamSeasonStats{Team: team}
	for _, item := range ts.Team.Record.Items {
		for _, st := range item.Stats {
			if st.Name == "winPercent" {
				out.WinPct = st.Value
			}
		}
	}
	for _, cat := range ts.Statistics {
		if cat.Name != "batting" {
			continue
		}
		var strikeouts, plateAppearances float64
		for _, st := range cat.Stats {
			switch st.Name {
			case "avg":
				out.BattingAvg = st.Value
			case "strikeouts":
				strikeouts = st.Value
			case "plateAppearances":
				plateAppearances = st.Value
			}
		}
		if plateAppearances > 0 {
			out.BattingKRate = strikeouts / plateAppearances
		}
	}
	return out, nil
}

// Athlete statistics JSON shapes.
type athleteSearchResponse struct {
	Athletes []struct {
		ID          string      `json:"id"`
		DisplayName string      `json:"displayName"`
		Statistics  []namedStat `json:"statistics"`
	} `json:"athletes"`
}

// FetchPitcherMetrics looks up a starter by display name. A pitcher with
// no published Statcast-style rates gets league-average placeholders from
// the caller, not from here.
func (s *ESPNSource) FetchPitcherMetrics(playerName string) (*model.PitcherMetrics, error) {
	var ar athleteSearchResponse
	endpoint := fmt.Sprintf("%s/athletes?search=%s", s.BaseURL, url.QueryEscape(playerName))
	if err := s.getJSON(endpoint, &ar); err != nil {
		return nil, fmt.Errorf("fetch athlete %s: %w", playerName, err)
	}

	for _, a := range ar.Athletes {
		if a.DisplayName != playerName {
			continue
		}
		m := &model.PitcherMetrics{Name: a.DisplayName}
		for _, st := range a.Statistics {
			switch st.Name {
			case "strikeoutRate":
				m.KRate = st.Value
			case "walkRate":
				m.BBRate = st.Value
			case "barrelRate":
				m.BarrelRate = st.Value
			case "avgExitVelocity":
				m.AvgExitVelo = st.Value
			case "strikeoutsPerNineInnings":
				m.KPerNine = st.Value
			}
		}
		m.ExpectedERA = expectedERA(m)
		return m, nil
	}
	return nil, fmt.Errorf("pitcher %q not found", playerName)
}

// expectedERA is a coarse xERA estimate from contact and command rates.
func expectedERA(m *model.PitcherMetrics) float64 {
	return 3.0 + m.BarrelRate*15 + m.BBRate*3 - m.KRate*2
}

func (s *ESPNSource) getJSON(endpoint string, v any) error {
	resp, err := s.Client.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
