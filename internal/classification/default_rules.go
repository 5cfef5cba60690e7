package classification

import "github.com/Veraticus/billscout/internal/model"

// DefaultRules returns the built-in rule table and tag lookup.
// Rule order matters: earlier categories win confidence ties.
func DefaultRules() model.RuleSet {
	return model.RuleSet{
		Rules: []model.CategoryRule{
			{
				Category:       "Utilities",
				Keywords:       []string{"electric", "electricity", "gas", "water", "sewer", "utility", "power", "energy", "trash"},
				BaseConfidence: 0.9,
				Subcategories:  []string{"Electricity", "Gas", "Water/Sewer", "Trash/Recycling"},
			},
			{
				Category:       "Internet/Telecom",
				Keywords:       []string{"internet", "broadband", "wifi", "cable", "comcast", "xfinity", "verizon", "at&t", "t-mobile", "spectrum", "phone", "wireless", "fiber"},
				BaseConfidence: 0.9,
				Subcategories:  []string{"Internet", "Mobile/Wireless", "Cable TV", "Landline/Phone"},
			},
			{
				Category:       "Insurance",
				Keywords:       []string{"insurance", "premium", "policy", "coverage", "deductible", "geico", "progressive", "allstate", "state farm"},
				BaseConfidence: 0.85,
				Subcategories:  []string{"Auto", "Home/Renters", "Health", "Life"},
			},
			{
				Category:       "Subscriptions/Streaming",
				Keywords:       []string{"netflix", "hulu", "spotify", "subscription", "streaming", "disney+", "hbo", "youtube", "apple music"},
				BaseConfidence: 0.85,
				Subcategories:  []string{"Video Streaming", "Music", "Software"},
			},
			{
				Category:       "Groceries",
				Keywords:       []string{"grocery", "groceries", "supermarket", "whole foods", "trader joe", "kroger", "safeway", "costco", "aldi", "produce"},
				BaseConfidence: 0.85,
				Subcategories:  []string{"Supermarket", "Warehouse Club", "Specialty"},
			},
			{
				Category:       "Dining",
				Keywords:       []string{"restaurant", "cafe", "coffee", "pizza", "burger", "doordash", "ubereats", "grubhub", "diner", "takeout"},
				BaseConfidence: 0.8,
				Subcategories:  []string{"Restaurants", "Coffee/Cafe", "Delivery/Takeout"},
			},
			{
				Category:       "Transportation",
				Keywords:       []string{"fuel", "gasoline", "uber", "lyft", "parking", "toll", "transit", "chevron", "exxon", "auto repair"},
				BaseConfidence: 0.8,
				Subcategories:  []string{"Fuel", "Rideshare", "Parking/Tolls", "Public Transit", "Maintenance/Repair"},
			},
			{
				Category:       "Healthcare",
				Keywords:       []string{"pharmacy", "doctor", "medical", "hospital", "dental", "clinic", "walgreens", "cvs", "prescription", "vision"},
				BaseConfidence: 0.85,
				Subcategories:  []string{"Medical", "Pharmacy/Prescription", "Dental", "Vision"},
			},
			{
				Category:       "Housing",
				Keywords:       []string{"rent", "mortgage", "lease", "landlord", "apartment", "hoa", "property tax"},
				BaseConfidence: 0.9,
				Subcategories:  []string{"Rent", "Mortgage", "HOA/Fees"},
			},
			{
				Category:       "Shopping",
				Keywords:       []string{"amazon", "walmart", "target", "retail", "clothing", "electronics", "department store"},
				BaseConfidence: 0.7,
				Subcategories:  []string{"Online", "Clothing", "Electronics", "General Merchandise"},
			},
			{
				Category:       "Entertainment",
				Keywords:       []string{"movie", "cinema", "theater", "concert", "ticket", "gaming", "museum"},
				BaseConfidence: 0.75,
				Subcategories:  []string{"Movies/Theater", "Live Events", "Gaming"},
			},
			{
				Category:       "Travel",
				Keywords:       []string{"airline", "flight", "hotel", "airbnb", "expedia", "booking", "rental car"},
				BaseConfidence: 0.8,
				Subcategories:  []string{"Flights", "Lodging/Hotel", "Car Rental"},
			},
			{
				Category:       "Education",
				Keywords:       []string{"tuition", "school", "university", "college", "course", "textbook"},
				BaseConfidence: 0.8,
				Subcategories:  []string{"Tuition", "Courses", "Books/Supplies"},
			},
			{
				Category:       "Fitness",
				Keywords:       []string{"gym", "fitness", "yoga", "pilates", "crossfit", "personal trainer"},
				BaseConfidence: 0.8,
				Subcategories:  []string{"Gym Membership", "Classes", "Training"},
			},
		},
		Tags: map[string][]string{
			"Utilities":               {"recurring", "household"},
			"Internet/Telecom":        {"recurring", "connectivity"},
			"Insurance":               {"recurring", "protection"},
			"Subscriptions/Streaming": {"recurring", "discretionary"},
			"Groceries":               {"essential"},
			"Dining":                  {"discretionary", "food"},
			"Transportation":          {"commute"},
			"Healthcare":              {"essential", "health"},
			"Housing":                 {"recurring", "essential"},
			"Shopping":                {"discretionary"},
			"Entertainment":           {"discretionary", "leisure"},
			"Travel":                  {"leisure"},
			"Education":               {"investment"},
			"Fitness":                 {"health", "recurring"},
		},
	}
}
