package catalog

import "lofireads/internal/domain"

// seedBooks is the fixed storefront catalog.
var seedBooks = []domain.Book{
	{
		ID:          "1",
		Title:       "Whispers in the Rain",
		Author:      "Elena Nightingale",
		Price:       24.99,
		Description: "A poetic journey through solitude and self-discovery, set against the backdrop of a rainy coastal town. Follow Maya as she unravels the mysteries of her grandmother's diary and finds her own voice in the process.",
		Cover:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop",
		Genre:       "Literary Fiction",
		Year:        2024,
		Pages:       312,
		ISBN:        "978-1-234567-01-2",
	},
	{
		ID:          "2",
		Title:       "The Coffee Shop Chronicles",
		Author:      "Elena Nightingale",
		Price:       19.99,
		Description: "An anthology of interconnected short stories, all set in a cozy corner café. Each cup of coffee brings a new tale of love, loss, and the small moments that define our lives.",
		Cover:       "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop",
		Genre:       "Short Stories",
		Year:        2023,
		Pages:       248,
		ISBN:        "978-1-234567-02-9",
	},
	{
		ID:          "3",
		Title:       "Midnight Gardens",
		Author:      "Elena Nightingale",
		Price:       27.99,
		Description: "A magical realism novel where the boundaries between dreams and reality blur. When Iris inherits her aunt's mysterious garden, she discovers that the flowers bloom only at midnight—and they hold secrets of the past.",
		Cover:       "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop",
		Genre:       "Magical Realism",
		Year:        2022,
		Pages:       384,
		ISBN:        "978-1-234567-03-6",
	},
	{
		ID:          "4",
		Title:       "Letters to Tomorrow",
		Author:      "Elena Nightingale",
		Price:       22.99,
		Description: "A heartfelt epistolary novel told through letters between a grandmother and her granddaughter across decades. A meditation on time, memory, and the enduring power of written words.",
		Cover:       "https://images.unsplash.com/photo-1476275466078-4007374efbbe?w=400&h=600&fit=crop",
		Genre:       "Contemporary Fiction",
		Year:        2021,
		Pages:       296,
		ISBN:        "978-1-234567-04-3",
	},
	{
		ID:          "5",
		Title:       "The Vinyl Years",
		Author:      "Elena Nightingale",
		Price:       21.99,
		Description: "A nostalgic journey through the 1970s music scene, following a young woman's quest to become a radio DJ. Full of warmth, humor, and the unforgettable soundtrack of an era.",
		Cover:       "https://images.unsplash.com/photo-1495446815901-a7297e633e8d?w=400&h=600&fit=crop",
		Genre:       "Historical Fiction",
		Year:        2020,
		Pages:       328,
		ISBN:        "978-1-234567-05-0",
	},
	{
		ID:          "6",
		Title:       "Autumn in Kyoto",
		Author:      "Elena Nightingale",
		Price:       26.99,
		Description: "A contemplative novel about an American artist who travels to Japan to find inspiration and unexpectedly finds herself. A story of cultural discovery, healing, and the art of letting go.",
		Cover:       "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=400&h=600&fit=crop",
		Genre:       "Literary Fiction",
		Year:        2019,
		Pages:       356,
		ISBN:        "978-1-234567-06-7",
	},
}
