package sources

// Bias is the political-lean label attached to a source.
type Bias string

const (
	BiasFarLeft     Bias = "far-left"
	BiasLeft        Bias = "left"
	BiasLeftCenter  Bias = "left-center"
	BiasCenter      Bias = "center"
	BiasRightCenter Bias = "right-center"
	BiasRight       Bias = "right"
	BiasFarRight    Bias = "far-right"
	BiasCentrist    Bias = "centrist"
	BiasUnknown     Bias = "unknown"
	BiasVaries      Bias = "varies"
)

// Category is the content category of a source or page.
type Category string

const (
	CategoryNews          Category = "news"
	CategorySocial        Category = "social"
	CategoryEntertainment Category = "entertainment"
	CategoryEducational   Category = "educational"
	CategoryProfessional  Category = "professional"
	CategoryFactCheck     Category = "fact-check"
	CategoryStateMedia    Category = "state-media"
	CategoryConspiracy    Category = "conspiracy"
	CategoryScience       Category = "science"
	CategoryOther         Category = "other"
)

// Info describes one entry of the source reference table. Credibility is on
// a 0-10 scale.
type Info struct {
	Domain      string
	Name        string
	Credibility float64
	Bias        Bias
	Category    Category
}
