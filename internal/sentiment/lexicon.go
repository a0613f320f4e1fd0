package sentiment

// entry holds the lexical scores for one word
type entry struct {
	polarity     float64 // [-1, 1]
	subjectivity float64 // [0, 1]
}

// lexicon maps lowercase words to polarity/subjectivity scores, in the
// spirit of pattern-based sentiment lexicons.
var lexicon = map[string]entry{
	"good":         {0.7, 0.6},
	"great":        {0.8, 0.75},
	"excellent":    {1.0, 1.0},
	"amazing":      {0.6, 0.9},
	"incredible":   {0.9, 0.9},
	"wonderful":    {1.0, 1.0},
	"fantastic":    {0.9, 0.9},
	"positive":     {0.3, 0.4},
	"best":         {1.0, 0.3},
	"better":       {0.5, 0.5},
	"success":      {0.6, 0.5},
	"successful":   {0.6, 0.5},
	"win":          {0.5, 0.4},
	"wins":         {0.5, 0.4},
	"winning":      {0.5, 0.4},
	"victory":      {0.6, 0.5},
	"growth":       {0.4, 0.3},
	"improve":      {0.4, 0.4},
	"improved":     {0.4, 0.4},
	"strong":       {0.4, 0.4},
	"happy":        {0.8, 1.0},
	"hope":         {0.4, 0.6},
	"hopeful":      {0.5, 0.7},
	"safe":         {0.5, 0.5},
	"peace":        {0.5, 0.4},
	"agreement":    {0.2, 0.2},
	"breakthrough": {0.6, 0.6},
	"record":       {0.2, 0.3},
	"celebrate":    {0.7, 0.7},
	"praise":       {0.6, 0.7},
	"praised":      {0.6, 0.7},
	"support":      {0.3, 0.3},
	"boost":        {0.4, 0.4},
	"thriving":     {0.7, 0.7},
	"recovery":     {0.4, 0.4},

	"bad":           {-0.7, 0.67},
	"terrible":      {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"worst":         {-1.0, 0.3},
	"worse":         {-0.5, 0.5},
	"negative":      {-0.3, 0.4},
	"fail":          {-0.5, 0.5},
	"fails":         {-0.5, 0.5},
	"failed":        {-0.5, 0.5},
	"failure":       {-0.6, 0.6},
	"crisis":        {-0.6, 0.5},
	"disaster":      {-0.8, 0.7},
	"catastrophe":   {-0.9, 0.8},
	"death":         {-0.6, 0.3},
	"deaths":        {-0.6, 0.3},
	"dead":          {-0.6, 0.3},
	"killed":        {-0.7, 0.4},
	"kill":          {-0.7, 0.4},
	"war":           {-0.5, 0.3},
	"attack":        {-0.6, 0.4},
	"attacked":      {-0.6, 0.4},
	"threat":        {-0.5, 0.5},
	"danger":        {-0.6, 0.5},
	"dangerous":     {-0.6, 0.6},
	"fear":          {-0.5, 0.6},
	"panic":         {-0.6, 0.7},
	"collapse":      {-0.6, 0.5},
	"corrupt":       {-0.7, 0.7},
	"corruption":    {-0.7, 0.7},
	"scandal":       {-0.6, 0.6},
	"fraud":         {-0.7, 0.6},
	"fake":          {-0.5, 0.6},
	"hoax":          {-0.6, 0.7},
	"lie":           {-0.6, 0.7},
	"lies":          {-0.6, 0.7},
	"shocking":      {-0.4, 0.8},
	"shock":         {-0.3, 0.6},
	"outrage":       {-0.6, 0.8},
	"outrageous":    {-0.7, 0.9},
	"angry":         {-0.5, 0.7},
	"anger":         {-0.5, 0.7},
	"sad":           {-0.5, 1.0},
	"tragic":        {-0.8, 0.8},
	"tragedy":       {-0.8, 0.8},
	"devastating":   {-0.8, 0.8},
	"destroy":       {-0.7, 0.6},
	"destroyed":     {-0.7, 0.6},
	"loss":          {-0.4, 0.4},
	"losses":        {-0.4, 0.4},
	"poor":          {-0.4, 0.6},
	"weak":          {-0.3, 0.5},
	"decline":       {-0.3, 0.3},
	"warning":       {-0.3, 0.4},
	"emergency":     {-0.4, 0.4},
	"controversial": {-0.3, 0.7},
	"banned":        {-0.3, 0.4},
	"illegal":       {-0.4, 0.4},
	"unbelievable":  {-0.2, 0.9},
	"conspiracy":    {-0.4, 0.7},
}

// negations flip the polarity of the word that follows within a short window
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nobody": {},
	"none": {}, "without": {}, "hardly": {}, "isnt": {}, "wasnt": {},
	"dont": {}, "doesnt": {}, "didnt": {}, "wont": {}, "cant": {},
}

// intensifiers scale the polarity and subjectivity of the word that follows
var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "really": 1.25, "absolutely": 1.4,
	"incredibly": 1.4, "totally": 1.3, "completely": 1.35, "highly": 1.25,
	"utterly": 1.5, "deeply": 1.3,
}
