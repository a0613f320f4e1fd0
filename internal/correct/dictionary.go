package correct

import "strings"

// preserveWords are tokens that must never be rewritten even in lowercase:
// political figures, institutions and abbreviations that dominate news text
// but sit close to dictionary words in edit distance.
var preserveWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// political figures
		"biden", "trump", "obama", "clinton", "harris", "pence", "pelosi", "mcconnell",
		"putin", "zelensky", "xi", "modi", "macron", "trudeau", "netanyahu",
		// political terms
		"bipartisan", "democrat", "republican", "senate", "congress", "parliament",
		"legislation", "referendum", "caucus", "filibuster",
		// recurring news terms
		"covid", "pandemic", "vaccine", "brexit", "nato", "un", "eu", "gdp",
		"cryptocurrency", "bitcoin", "ai", "tech", "startup",
		// abbreviations
		"usa", "uk", "uae", "ceo", "cfo", "fbi", "cia", "nasa", "who",
	} {
		preserveWords[w] = struct{}{}
	}
}

// dictionaryWords is the reference vocabulary, ordered by descending usage
// frequency. Order matters: it breaks ties between equally distant
// correction candidates, so it must stay stable.
var dictionaryWords = []string{
	"the", "and", "for", "that", "with", "from", "this", "have", "has", "had",
	"was", "were", "are", "will", "would", "could", "should", "been", "being",
	"not", "but", "all", "can", "her", "his", "their", "its", "our", "your",
	"they", "them", "she", "him", "who", "which", "what", "when", "where", "why",
	"how", "than", "then", "now", "new", "one", "two", "three", "four", "five",
	"first", "second", "third", "last", "next", "year", "years", "month", "months",
	"week", "weeks", "day", "days", "time", "times", "people", "person", "man",
	"woman", "men", "women", "child", "children", "family", "families", "world",
	"country", "countries", "nation", "national", "international", "state", "states",
	"city", "cities", "government", "governments", "president", "minister", "leader",
	"leaders", "official", "officials", "police", "court", "judge", "law", "laws",
	"legal", "justice", "election", "elections", "vote", "votes", "voters", "party",
	"parties", "political", "politics", "policy", "policies", "public", "private",
	"economy", "economic", "money", "market", "markets", "bank", "banks", "business",
	"businesses", "company", "companies", "industry", "trade", "tax", "taxes",
	"budget", "billion", "million", "thousand", "hundred", "percent", "number",
	"numbers", "report", "reports", "reported", "reporting", "news", "media", "press",
	"journalist", "journalists", "story", "stories", "article", "articles", "headline",
	"headlines", "statement", "statements", "announcement", "announced", "announce",
	"said", "says", "say", "saying", "told", "tell", "tells", "spoke", "speak",
	"speaks", "speaking", "claim", "claims", "claimed", "confirm", "confirms",
	"confirmed", "deny", "denies", "denied", "reveal", "reveals", "revealed",
	"according", "source", "sources", "evidence", "fact", "facts", "truth", "true",
	"false", "fake", "real", "hoax", "rumor", "rumors", "study", "studies", "research",
	"researchers", "scientist", "scientists", "science", "scientific", "expert",
	"experts", "professor", "university", "universities", "school", "schools",
	"student", "students", "education", "health", "hospital", "hospitals", "doctor",
	"doctors", "patient", "patients", "disease", "virus", "outbreak", "medicine",
	"medical", "treatment", "drug", "drugs", "death", "deaths", "died", "dies",
	"killed", "injured", "victim", "victims", "attack", "attacks", "attacked",
	"war", "wars", "military", "army", "soldier", "soldiers", "weapon", "weapons",
	"security", "terror", "terrorism", "crisis", "emergency", "disaster", "accident",
	"fire", "flood", "storm", "earthquake", "hurricane", "climate", "change",
	"weather", "environment", "environmental", "energy", "power", "water", "food",
	"earth", "planet", "space", "moon", "sun", "star", "stars", "flat", "round",
	"shocking", "shock", "shocked", "surprising", "surprise", "surprised", "amazing",
	"incredible", "unbelievable", "breaking", "latest", "exclusive", "urgent",
	"major", "massive", "huge", "large", "small", "big", "great", "good", "bad",
	"best", "worst", "high", "higher", "highest", "low", "lower", "lowest", "long",
	"short", "old", "young", "early", "late", "recent", "recently", "today",
	"yesterday", "tomorrow", "tonight", "morning", "evening", "night", "found",
	"find", "finds", "finding", "show", "shows", "showed", "shown", "made", "make",
	"makes", "making", "take", "takes", "taken", "took", "give", "gives", "given",
	"gave", "get", "gets", "got", "come", "comes", "came", "coming", "went", "goes",
	"going", "gone", "left", "leave", "leaves", "call", "calls", "called", "calling",
	"work", "works", "worked", "working", "worker", "workers", "job", "jobs", "plan",
	"plans", "planned", "planning", "deal", "deals", "agreement", "meeting", "talks",
	"discussion", "decision", "decided", "decide", "against", "between", "during",
	"after", "before", "under", "over", "about", "around", "through", "because",
	"million", "increase", "increased", "decrease", "decreased", "rise", "rises",
	"rising", "rose", "fall", "falls", "falling", "fell", "growth", "record",
	"records", "house", "home", "homes", "building", "road", "street", "area",
	"region", "border", "north", "south", "east", "west", "central", "local",
	"foreign", "global", "across", "million", "group", "groups", "member", "members",
	"team", "teams", "player", "players", "game", "games", "match", "season",
	"win", "wins", "won", "winning", "lose", "loses", "lost", "losing",
	"met", "meet", "meets", "meeting", "agreed", "agree", "agrees", "joint",
	"mission", "missions", "launch", "launched", "launches", "also", "only",
	"even", "still", "while", "since", "both", "each", "same", "very", "just",
	"like", "more", "most", "some", "many", "much", "well", "way", "ways",
	"use", "used", "uses", "using", "own", "other", "others", "another",
	"several", "few", "part", "parts", "place", "places", "case", "cases",
	"back", "down", "out", "off", "into", "onto", "amid", "among", "per",
}

// dictionarySet is the membership index for the word list
var dictionarySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(dictionaryWords))
	for _, w := range dictionaryWords {
		m[w] = struct{}{}
	}
	return m
}()

func inDictionary(word string) bool {
	_, ok := dictionarySet[strings.ToLower(word)]
	return ok
}

func isPreserved(word string) bool {
	_, ok := preserveWords[strings.ToLower(word)]
	return ok
}
