package feed

import "testing"

func TestSelectImageScoring(t *testing.T) {
	hints := []MediaHint{
		{URL: "https://example.com/page.html"},
		{URL: "https://cdn.example.com/uploads/photo.jpg", MIMEType: "image/jpeg", Width: 1200, Height: 675},
		{URL: "https://example.com/small.png", Width: 100, Height: 100},
	}

	selected := SelectImage(hints)
	if selected != "https://cdn.example.com/uploads/photo.jpg" {
		t.Errorf("Expected high-scoring CDN image, got %s", selected)
	}
}

func TestSelectImageTieBreakByArea(t *testing.T) {
	hints := []MediaHint{
		{URL: "https://cdn.example.com/images/a.jpg", Width: 400, Height: 225},
		{URL: "https://cdn.example.com/images/b.jpg", Width: 800, Height: 450},
	}

	// Same score components except area; b wins on +15 vs +8.
	if selected := SelectImage(hints); selected != "https://cdn.example.com/images/b.jpg" {
		t.Errorf("Expected larger-area image, got %s", selected)
	}
}

func TestSelectImageTieKeepsDocumentOrder(t *testing.T) {
	hints := []MediaHint{
		{URL: "https://cdn.example.com/images/first.jpg"},
		{URL: "https://cdn.example.com/images/second.jpg"},
	}

	if selected := SelectImage(hints); selected != "https://cdn.example.com/images/first.jpg" {
		t.Errorf("Expected first-encountered candidate on tie, got %s", selected)
	}
}

func TestSelectImageEmpty(t *testing.T) {
	if selected := SelectImage(nil); selected != "" {
		t.Errorf("Expected empty result for no candidates, got %s", selected)
	}
}

func TestScoreHint(t *testing.T) {
	tests := []struct {
		name     string
		hint     MediaHint
		expected int
	}{
		{
			name:     "mime type only",
			hint:     MediaHint{URL: "https://example.com/x", MIMEType: "image/png"},
			expected: 50,
		},
		{
			name:     "extension only",
			hint:     MediaHint{URL: "https://example.com/x.webp"},
			expected: 40,
		},
		{
			name:     "media path only",
			hint:     MediaHint{URL: "https://example.com/uploads/x"},
			expected: 15,
		},
		{
			name:     "large area",
			hint:     MediaHint{URL: "https://example.com/x", Width: 800, Height: 450},
			expected: 15,
		},
		{
			name:     "medium area",
			hint:     MediaHint{URL: "https://example.com/x", Width: 400, Height: 225},
			expected: 8,
		},
		{
			name:     "everything",
			hint:     MediaHint{URL: "https://cdn.example.com/uploads/x.jpg?v=2", MIMEType: "image/jpeg", Width: 1600, Height: 900},
			expected: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreHint(tt.hint); got != tt.expected {
				t.Errorf("Expected score %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPreferOriginal(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"https://cdn.example.com/photo-300x200.jpg", "https://cdn.example.com/photo.jpg"},
		{"https://cdn.example.com/photo-300x200.jpg?v=1", "https://cdn.example.com/photo.jpg?v=1"},
		{"https://cdn.example.com/photo.jpg", "https://cdn.example.com/photo.jpg"},
		{"https://cdn.example.com/photo-x200.jpg", "https://cdn.example.com/photo-x200.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := PreferOriginal(tt.in); got != tt.expected {
			t.Errorf("PreferOriginal(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
