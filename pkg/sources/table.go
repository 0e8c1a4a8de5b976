package sources

// table is the built-in source reference data. Credibility ratings and bias
// labels loosely follow the public media-bias charts; they are deliberately
// coarse and only need to be stable, not authoritative.
var table = map[string]Info{
	// Wire services and broadly centrist outlets
	"reuters.com":   {Domain: "reuters.com", Name: "Reuters", Credibility: 9.0, Bias: BiasCentrist, Category: CategoryNews},
	"apnews.com":    {Domain: "apnews.com", Name: "Associated Press", Credibility: 8.8, Bias: BiasCentrist, Category: CategoryNews},
	"bbc.com":       {Domain: "bbc.com", Name: "BBC News", Credibility: 8.5, Bias: BiasCenter, Category: CategoryNews},
	"bbc.co.uk":     {Domain: "bbc.co.uk", Name: "BBC News", Credibility: 8.5, Bias: BiasCenter, Category: CategoryNews},
	"c-span.org":    {Domain: "c-span.org", Name: "C-SPAN", Credibility: 8.7, Bias: BiasCentrist, Category: CategoryNews},
	"thehill.com":   {Domain: "thehill.com", Name: "The Hill", Credibility: 7.4, Bias: BiasCenter, Category: CategoryNews},
	"axios.com":     {Domain: "axios.com", Name: "Axios", Credibility: 7.6, Bias: BiasCenter, Category: CategoryNews},
	"economist.com": {Domain: "economist.com", Name: "The Economist", Credibility: 8.3, Bias: BiasCenter, Category: CategoryNews},
	"ft.com":        {Domain: "ft.com", Name: "Financial Times", Credibility: 8.4, Bias: BiasCenter, Category: CategoryNews},
	"bloomberg.com": {Domain: "bloomberg.com", Name: "Bloomberg", Credibility: 7.9, Bias: BiasLeftCenter, Category: CategoryNews},
	"usatoday.com":  {Domain: "usatoday.com", Name: "USA Today", Credibility: 7.2, Bias: BiasLeftCenter, Category: CategoryNews},
	"csmonitor.com": {Domain: "csmonitor.com", Name: "Christian Science Monitor", Credibility: 8.0, Bias: BiasCenter, Category: CategoryNews},

	// Left of center
	"nytimes.com":         {Domain: "nytimes.com", Name: "The New York Times", Credibility: 8.0, Bias: BiasLeftCenter, Category: CategoryNews},
	"washingtonpost.com":  {Domain: "washingtonpost.com", Name: "The Washington Post", Credibility: 7.8, Bias: BiasLeftCenter, Category: CategoryNews},
	"npr.org":             {Domain: "npr.org", Name: "NPR", Credibility: 8.2, Bias: BiasLeftCenter, Category: CategoryNews},
	"theguardian.com":     {Domain: "theguardian.com", Name: "The Guardian", Credibility: 7.5, Bias: BiasLeft, Category: CategoryNews},
	"cnn.com":             {Domain: "cnn.com", Name: "CNN", Credibility: 6.8, Bias: BiasLeft, Category: CategoryNews},
	"msnbc.com":           {Domain: "msnbc.com", Name: "MSNBC", Credibility: 5.8, Bias: BiasLeft, Category: CategoryNews},
	"vox.com":             {Domain: "vox.com", Name: "Vox", Credibility: 6.5, Bias: BiasLeft, Category: CategoryNews},
	"huffpost.com":        {Domain: "huffpost.com", Name: "HuffPost", Credibility: 5.5, Bias: BiasLeft, Category: CategoryNews},
	"motherjones.com":     {Domain: "motherjones.com", Name: "Mother Jones", Credibility: 6.2, Bias: BiasLeft, Category: CategoryNews},
	"jacobin.com":         {Domain: "jacobin.com", Name: "Jacobin", Credibility: 5.0, Bias: BiasFarLeft, Category: CategoryNews},
	"occupydemocrats.com": {Domain: "occupydemocrats.com", Name: "Occupy Democrats", Credibility: 2.5, Bias: BiasFarLeft, Category: CategoryNews},

	// Right of center
	"wsj.com":                {Domain: "wsj.com", Name: "The Wall Street Journal", Credibility: 8.1, Bias: BiasRightCenter, Category: CategoryNews},
	"nationalreview.com":     {Domain: "nationalreview.com", Name: "National Review", Credibility: 6.6, Bias: BiasRight, Category: CategoryNews},
	"reason.com":             {Domain: "reason.com", Name: "Reason", Credibility: 7.0, Bias: BiasRightCenter, Category: CategoryNews},
	"washingtonexaminer.com": {Domain: "washingtonexaminer.com", Name: "Washington Examiner", Credibility: 5.9, Bias: BiasRight, Category: CategoryNews},
	"foxnews.com":            {Domain: "foxnews.com", Name: "Fox News", Credibility: 5.2, Bias: BiasRight, Category: CategoryNews},
	"nypost.com":             {Domain: "nypost.com", Name: "New York Post", Credibility: 5.4, Bias: BiasRight, Category: CategoryNews},
	"dailywire.com":          {Domain: "dailywire.com", Name: "The Daily Wire", Credibility: 4.5, Bias: BiasRight, Category: CategoryNews},
	"theblaze.com":           {Domain: "theblaze.com", Name: "The Blaze", Credibility: 4.2, Bias: BiasRight, Category: CategoryNews},
	"breitbart.com":          {Domain: "breitbart.com", Name: "Breitbart", Credibility: 3.0, Bias: BiasFarRight, Category: CategoryNews},
	"oann.com":               {Domain: "oann.com", Name: "One America News", Credibility: 2.2, Bias: BiasFarRight, Category: CategoryNews},

	// Fact checking
	"snopes.com":     {Domain: "snopes.com", Name: "Snopes", Credibility: 8.0, Bias: BiasCenter, Category: CategoryFactCheck},
	"factcheck.org":  {Domain: "factcheck.org", Name: "FactCheck.org", Credibility: 8.4, Bias: BiasCenter, Category: CategoryFactCheck},
	"politifact.com": {Domain: "politifact.com", Name: "PolitiFact", Credibility: 7.8, Bias: BiasLeftCenter, Category: CategoryFactCheck},

	// State media
	"rt.com":        {Domain: "rt.com", Name: "RT", Credibility: 2.0, Bias: BiasVaries, Category: CategoryStateMedia},
	"xinhuanet.com": {Domain: "xinhuanet.com", Name: "Xinhua", Credibility: 2.8, Bias: BiasVaries, Category: CategoryStateMedia},
	"presstv.ir":    {Domain: "presstv.ir", Name: "Press TV", Credibility: 2.0, Bias: BiasVaries, Category: CategoryStateMedia},

	// Conspiracy
	"infowars.com":      {Domain: "infowars.com", Name: "InfoWars", Credibility: 1.0, Bias: BiasFarRight, Category: CategoryConspiracy},
	"naturalnews.com":   {Domain: "naturalnews.com", Name: "Natural News", Credibility: 1.2, Bias: BiasFarRight, Category: CategoryConspiracy},
	"globalresearch.ca": {Domain: "globalresearch.ca", Name: "Global Research", Credibility: 1.8, Bias: BiasVaries, Category: CategoryConspiracy},

	// Science
	"nature.com":             {Domain: "nature.com", Name: "Nature", Credibility: 9.4, Bias: BiasCentrist, Category: CategoryScience},
	"scientificamerican.com": {Domain: "scientificamerican.com", Name: "Scientific American", Credibility: 8.8, Bias: BiasCenter, Category: CategoryScience},
	"newscientist.com":       {Domain: "newscientist.com", Name: "New Scientist", Credibility: 8.3, Bias: BiasCenter, Category: CategoryScience},
	"nationalgeographic.com": {Domain: "nationalgeographic.com", Name: "National Geographic", Credibility: 8.6, Bias: BiasCentrist, Category: CategoryScience},

	// Social
	"twitter.com":   {Domain: "twitter.com", Name: "Twitter / X", Credibility: 4.0, Bias: BiasVaries, Category: CategorySocial},
	"x.com":         {Domain: "x.com", Name: "Twitter / X", Credibility: 4.0, Bias: BiasVaries, Category: CategorySocial},
	"facebook.com":  {Domain: "facebook.com", Name: "Facebook", Credibility: 3.5, Bias: BiasVaries, Category: CategorySocial},
	"reddit.com":    {Domain: "reddit.com", Name: "Reddit", Credibility: 4.5, Bias: BiasVaries, Category: CategorySocial},
	"instagram.com": {Domain: "instagram.com", Name: "Instagram", Credibility: 3.5, Bias: BiasVaries, Category: CategorySocial},
	"tiktok.com":    {Domain: "tiktok.com", Name: "TikTok", Credibility: 3.0, Bias: BiasVaries, Category: CategorySocial},

	// Entertainment
	"youtube.com": {Domain: "youtube.com", Name: "YouTube", Credibility: 4.8, Bias: BiasVaries, Category: CategoryEntertainment},
	"netflix.com": {Domain: "netflix.com", Name: "Netflix", Credibility: 5.0, Bias: BiasUnknown, Category: CategoryEntertainment},
	"espn.com":    {Domain: "espn.com", Name: "ESPN", Credibility: 7.0, Bias: BiasUnknown, Category: CategoryEntertainment},
	"twitch.tv":   {Domain: "twitch.tv", Name: "Twitch", Credibility: 4.0, Bias: BiasVaries, Category: CategoryEntertainment},

	// Educational
	"wikipedia.org":   {Domain: "wikipedia.org", Name: "Wikipedia", Credibility: 7.8, Bias: BiasCentrist, Category: CategoryEducational},
	"britannica.com":  {Domain: "britannica.com", Name: "Encyclopaedia Britannica", Credibility: 8.9, Bias: BiasCentrist, Category: CategoryEducational},
	"khanacademy.org": {Domain: "khanacademy.org", Name: "Khan Academy", Credibility: 8.8, Bias: BiasCentrist, Category: CategoryEducational},
	"coursera.org":    {Domain: "coursera.org", Name: "Coursera", Credibility: 8.2, Bias: BiasCentrist, Category: CategoryEducational},
	"ted.com":         {Domain: "ted.com", Name: "TED", Credibility: 7.6, Bias: BiasLeftCenter, Category: CategoryEducational},

	// Professional
	"linkedin.com":      {Domain: "linkedin.com", Name: "LinkedIn", Credibility: 6.0, Bias: BiasUnknown, Category: CategoryProfessional},
	"github.com":        {Domain: "github.com", Name: "GitHub", Credibility: 8.0, Bias: BiasUnknown, Category: CategoryProfessional},
	"stackoverflow.com": {Domain: "stackoverflow.com", Name: "Stack Overflow", Credibility: 8.0, Bias: BiasUnknown, Category: CategoryProfessional},
}
