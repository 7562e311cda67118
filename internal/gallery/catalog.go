package gallery

// Categories lists the known photo categories. The set is open: uploads may
// introduce new ones.
var Categories = []string{"street", "portraits", "urban", "travel", "candid", "long-exposure", "wedding", "events", "models"}

// staticPhotos are the curated photos shipped with the site. Their ids stay
// below 1000 so they don't collide with database ids in practice.
var staticPhotos = []Photo{
	{
		ID:          1,
		Title:       "Coastal Serenity",
		Category:    "long-exposure",
		Src:         "/images/optimized_1-2mb_DSC02830_1751747402944.JPG",
		FullSrc:     "/images/optimized_1-2mb_DSC02830_1751747402944.JPG",
		Description: "Long exposure seascape capturing the ethereal movement of waves against weathered rocks",
		Tags:        []string{"seascape", "waves", "rocks", "water", "motion", "nature", "coastal", "ethereal"},
	},
	{
		ID:          100,
		Title:       "Wave Motion",
		Category:    "long-exposure",
		Src:         "/images/optimized_1-2mb_DSC02829_1751747653606.JPG",
		FullSrc:     "/images/optimized_1-2mb_DSC02829_1751747653606.JPG",
		Description: "Dynamic long exposure capturing the powerful flow and light trails of cascading waves",
		Tags:        []string{"waves", "motion", "water", "dynamic", "light-trails", "cascading", "flow", "energy"},
	},
	{
		ID:          4,
		Title:       "Summer Stroll",
		Category:    "street",
		Src:         "/images/optimized_1-2mb_DSCF3479_1751748628308.JPG",
		FullSrc:     "/images/optimized_1-2mb_DSCF3479_1751748628308.JPG",
		Description: "Candid street moment capturing the innocence of childhood amid the urban bustle",
		Tags:        []string{"street", "candid", "childhood", "urban", "summer", "walking", "documentary", "life"},
	},
	{
		ID:       114,
		Title:    "Festival Style",
		Category: "events",
		Event:    "Old Town Festival of Speed & Style",
		Src:      "/images/optimized_1-2mb_DSCF4430_1751762032638.JPG",
		FullSrc:  "/images/optimized_1-2mb_DSCF4430_1751762032638.JPG",
		Tags:     []string{"festival", "vintage", "fashion", "style", "group", "formal", "elegant", "event"},
	},
	{
		ID:       111,
		Title:    "Wedding Cake Topper",
		Category: "wedding",
		Src:      "/images/optimized_1-2mb_DSCF6775_1751760870510.jpg",
		FullSrc:  "/images/optimized_1-2mb_DSCF6775_1751760870510.jpg",
		Tags:     []string{"wedding", "cake", "topper", "details", "celebration", "romance", "decoration", "close-up"},
	},
	{
		ID:          101,
		Title:       "Wedding Elegance",
		Category:    "wedding",
		Src:         "/images/wedding_elegance.jpeg",
		FullSrc:     "/images/wedding_elegance.jpeg",
		Description: "Capturing the timeless beauty and emotion of wedding celebrations",
		Tags:        []string{"wedding", "elegance", "celebration", "beauty", "emotion", "timeless", "formal", "love"},
	},
	{
		ID:          102,
		Title:       "Bridal Grace",
		Category:    "wedding",
		Src:         "/images/bridal_grace.jpeg",
		FullSrc:     "/images/bridal_grace.jpeg",
		Description: "Intimate moments and delicate details of the special day",
	},
	{
		ID:          103,
		Title:       "Ceremony Moments",
		Category:    "wedding",
		Src:         "/images/ceremony_moments.jpeg",
		FullSrc:     "/images/ceremony_moments.jpeg",
		Description: "Authentic emotions and cherished memories from the wedding ceremony",
	},
	{
		ID:       104,
		Title:    "Sundress Festival",
		Category: "events",
		Event:    "Sundress Festival",
		Src:      "/images/optimized_1-2mb_DSCF7021_1751759471927.JPG",
		FullSrc:  "/images/optimized_1-2mb_DSCF7021_1751759471927.JPG",
	},
	{
		ID:          115,
		Title:       "Window Light",
		Category:    "models",
		Src:         "/photos/optimized_DSCF9272.jpg",
		FullSrc:     "/photos/optimized_DSCF9272.jpg",
		Description: "Graceful movement captured in natural window light with dramatic shadows and soft textures",
		Tags:        []string{"model", "portrait", "window-light", "movement", "grace", "shadows", "natural-light", "fashion"},
	},
	{
		ID:          116,
		Title:       "Parkour Focus",
		Category:    "events",
		Event:       "Momentum Parkour",
		Src:         "/photos/optimized_DSCF1011-2-2.jpg",
		FullSrc:     "/photos/optimized_DSCF1011-2-2.jpg",
		Description: "Athlete in deep concentration during parkour training, capturing the mental preparation and focus required for the discipline",
		Tags:        []string{"parkour", "athlete", "concentration", "training", "focus", "sport", "preparation", "determination"},
	},
	{
		ID:          117,
		Title:       "Holi Joy",
		Category:    "events",
		Event:       "Holi Festival",
		Src:         "/photos/optimized_DSCF0477_holi.jpg",
		FullSrc:     "/photos/optimized_DSCF0477_holi.jpg",
		Description: "Pure joy and celebration captured during Holi festival, with vibrant colors painting faces and clothes in the spirit of unity and happiness",
		Tags:        []string{"holi", "festival", "colors", "joy", "celebration", "portrait", "cultural", "happiness", "vibrant", "community"},
	},
	{
		ID:       105,
		Title:    "Family Moment",
		Category: "street",
		Src:      "/images/family_moment.jpg",
		FullSrc:  "/images/family_moment.jpg",
	},
	{
		ID:       106,
		Title:    "Film Photographer",
		Category: "street",
		Src:      "/images/film_photographer.jpg",
		FullSrc:  "/images/film_photographer.jpg",
	},
	{
		ID:       107,
		Title:    "Improv",
		Category: "events",
		Event:    "Improv",
		Src:      "/images/improv.jpg",
		FullSrc:  "/images/improv.jpg",
	},
	{
		ID:       108,
		Title:    "Sundress Festival",
		Category: "events",
		Event:    "Sundress Festival",
		Src:      "/images/optimized_1-2mb_DSCF7032_1751760063471.JPG",
		FullSrc:  "/images/optimized_1-2mb_DSCF7032_1751760063471.JPG",
	},
	{
		ID:       113,
		Title:    "Vintage Elegance",
		Category: "events",
		Event:    "Old Town Festival of Speed & Style",
		Src:      "/images/vintage_elegance.jpg",
		FullSrc:  "/images/vintage_elegance.jpg",
		Tags:     []string{"vintage", "parasol", "fashion", "elegance", "festival", "style", "portrait", "classic"},
	},
	{
		ID:       109,
		Title:    "Street Scene",
		Category: "street",
		Src:      "/images/street_scene.jpg",
		FullSrc:  "/images/street_scene.jpg",
	},
	{
		ID:       110,
		Title:    "Wedding Bouquet",
		Category: "wedding",
		Src:      "/images/optimized_1-2mb_DSCF5339_1751760681991.JPG",
		FullSrc:  "/images/optimized_1-2mb_DSCF5339_1751760681991.JPG",
	},
	{
		ID:       112,
		Title:    "Flower Girls",
		Category: "wedding",
		Src:      "/images/optimized_1-2mb_DSCF5262_1751761264800.JPG",
		FullSrc:  "/images/optimized_1-2mb_DSCF5262_1751761264800.JPG",
		Tags:     []string{"wedding", "flower-girls", "children", "bouquet", "dresses", "ceremony", "innocence", "joy"},
	},
}

// StaticPhotos returns a copy of the compiled-in catalog.
func StaticPhotos() []Photo {
	out := make([]Photo, len(staticPhotos))
	for i, p := range staticPhotos {
		p.Tags = NormalizeTags(p.Tags)
		out[i] = p
	}
	return out
}

// Merge concatenates the static photos followed by the dynamic ones. Tags on
// every returned photo are normalized; the inputs are not modified.
func Merge(static, dynamic []Photo) []Photo {
	out := make([]Photo, 0, len(static)+len(dynamic))
	for _, p := range static {
		p.Tags = NormalizeTags(p.Tags)
		out = append(out, p)
	}
	for _, p := range dynamic {
		p.Tags = NormalizeTags(p.Tags)
		out = append(out, p)
	}
	return out
}
