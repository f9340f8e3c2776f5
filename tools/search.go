package tools

import (
	"encoding/json"
	"slices"
	"strings"
)

type WebSearchInput struct {
	Query      string `json:"query" jsonschema_description:"Search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema_description:"Maximum number of results (default 3, at most 10)."`
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

const (
	defaultSearchResults = 3
	maxSearchResults     = 10
)

var WebSearchDefinition = ToolDefinition{
	Name:        "web_search",
	Description: "Search the web and return the most relevant pages as a JSON array of {title, url, snippet}.",
	InputSchema: WebSearchInputSchema,
	Function:    WebSearch,
}

var WebSearchInputSchema = GenerateSchema[WebSearchInput]()

// searchCorpus is the fixed index behind the mock search.
var searchCorpus = []SearchResult{
	{Title: "Tokyo weather forecast", URL: "https://weather.example.com/tokyo", Snippet: "Tokyo weather today: sunny, light winds from the south."},
	{Title: "Tokyo travel guide", URL: "https://travel.example.com/tokyo", Snippet: "Neighbourhoods, food and transport tips for visiting Tokyo."},
	{Title: "How ocean currents shape the climate", URL: "https://science.example.com/ocean-currents", Snippet: "Ocean currents move heat around the planet and drive regional weather."},
	{Title: "Writing haiku: a short guide", URL: "https://poetry.example.com/haiku", Snippet: "A haiku has three lines of five, seven and five syllables, often about nature or the ocean."},
	{Title: "Time zones explained", URL: "https://time.example.com/zones", Snippet: "Why the world uses time zones and how UTC offsets work."},
	{Title: "The Go programming language", URL: "https://go.dev", Snippet: "Go is an open source language for building simple, reliable and efficient software."},
	{Title: "Tool use with large language models", URL: "https://ai.example.com/tool-use", Snippet: "Models request tool calls; the application runs them and returns results to the model."},
	{Title: "New York weather", URL: "https://weather.example.com/new-york", Snippet: "New York weather: clear skies and mild temperatures this week."},
}

// WebSearch is a mock: it ranks the fixed corpus by how many query terms each
// page mentions. Ties keep corpus order so results are deterministic.
func WebSearch(input json.RawMessage) (string, error) {
	args, err := parseArgs(input)
	if err != nil {
		return "", err
	}
	query := strings.TrimSpace(args.Get("query").String())
	if query == "" {
		return "", invalidInput("query must not be empty")
	}
	limit := int(args.Get("max_results").Int())
	if limit <= 0 {
		limit = defaultSearchResults
	}
	limit = min(limit, maxSearchResults)

	type scored struct {
		res   SearchResult
		score int
	}
	terms := strings.Fields(strings.ToLower(query))
	var hits []scored
	for _, page := range searchCorpus {
		text := strings.ToLower(page.Title + " " + page.Snippet)
		score := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{res: page, score: score})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int { return b.score - a.score })

	out := make([]SearchResult, 0, min(limit, len(hits)))
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.res)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
