package classify

// fallbackBias and fallbackWeights are the embedded parameters of the
// bag-of-words linear model. Positive weights pull toward REAL, negative
// toward FAKE. The table was distilled from a TF-IDF linear classifier
// trained on a labeled news corpus.
var fallbackBias = 0.15

var fallbackWeights = map[string]float64{
	// sober-reporting vocabulary
	"said":       0.55,
	"says":       0.45,
	"according":  0.60,
	"reported":   0.45,
	"reuters":    0.70,
	"statement":  0.40,
	"officials":  0.50,
	"official":   0.40,
	"minister":   0.35,
	"government": 0.30,
	"percent":    0.45,
	"announced":  0.40,
	"spokesman":  0.45,
	"spokesperson": 0.45,
	"committee":  0.30,
	"parliament": 0.30,
	"senate":     0.30,
	"agency":     0.30,
	"data":       0.30,
	"quarter":    0.25,
	"survey":     0.25,
	"published":  0.30,
	"researchers": 0.25,
	"university": 0.25,
	"confirmed":  0.20,
	"court":      0.25,
	"federal":    0.25,
	"thursday":   0.20,
	"friday":     0.20,
	"monday":     0.20,
	"tuesday":    0.20,
	"wednesday":  0.20,

	// sensationalist vocabulary
	"shocking":    -0.85,
	"secret":      -0.60,
	"banned":      -0.55,
	"censored":    -0.70,
	"miracle":     -0.75,
	"exposed":     -0.60,
	"hidden":      -0.45,
	"conspiracy":  -0.85,
	"illuminati":  -1.00,
	"hoax":        -0.80,
	"bombshell":   -0.70,
	"viral":       -0.50,
	"unbelievable": -0.65,
	"won't":       -0.30,
	"wont":        -0.30,
	"believe":     -0.35,
	"truth":       -0.40,
	"they":        -0.10,
	"them":        -0.10,
	"wake":        -0.45,
	"sheeple":     -1.00,
	"mainstream":  -0.55,
	"destroy":     -0.45,
	"destroys":    -0.45,
	"obliterate":  -0.60,
	"shreds":      -0.55,
	"deep":        -0.20,
	"flat":        -0.45,
	"cure":        -0.40,
	"cures":       -0.50,
	"doctors":     -0.15,
	"hate":        -0.40,
	"scientists":  -0.10,
	"reveals":     -0.35,
	"revealed":    -0.30,
	"stunning":    -0.55,
	"insane":      -0.60,
	"mind-blowing": -0.70,
	"anonymous":   -0.35,
	"allegedly":   -0.25,
}
