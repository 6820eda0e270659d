package models

import "time"

type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
	Replies   int       `json:"replies"`
	Category  string    `json:"category"`
	IsLiked   bool      `json:"isLiked"`
}

func (p Post) GetID() string { return p.ID }

type PostForm struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type ForumStats struct {
	Posts   int `json:"posts"`
	Likes   int `json:"likes"`
	Replies int `json:"replies"`
}

const DefaultPostCategory = "General"

var PostCategories = []string{"General", "Diabetes", "Blood Pressure", "Heart Health", "Mental Health", "Events", "Questions"}

func SeedPosts(now time.Time) []Post {
	return []Post{
		{
			ID:        "1",
			Author:    "Dr. Priya Sharma",
			Avatar:    "👩‍⚕️",
			Title:     "Tips for Managing Diabetes in Summer",
			Content:   "During hot weather, people with diabetes need to take extra care. Stay hydrated, monitor blood sugar more frequently, and store medications properly...",
			Timestamp: now.Add(-time.Hour),
			Likes:     24,
			Replies:   8,
			Category:  "Diabetes",
		},
		{
			ID:        "2",
			Author:    "Ramesh Kumar",
			Avatar:    "👨",
			Title:     "Question: High BP medication timing",
			Content:   "My doctor prescribed BP medication to be taken in the morning. Is it okay to take it in the evening instead? What are your experiences?",
			Timestamp: now.Add(-2 * time.Hour),
			Likes:     12,
			Replies:   15,
			Category:  "Blood Pressure",
			IsLiked:   true,
		},
		{
			ID:        "3",
			Author:    "Community Health Worker",
			Avatar:    "🏥",
			Title:     "Free Health Checkup Camp - Bangalore",
			Content:   "We are organizing a free health checkup camp next Sunday at Community Center, Koramangala. Services include BP check, diabetes screening, BMI...",
			Timestamp: now.Add(-3 * time.Hour),
			Likes:     45,
			Replies:   23,
			Category:  "Events",
		},
	}
}
