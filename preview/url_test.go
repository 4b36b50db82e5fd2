package preview

import "testing"

func TestFirstURL(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "plain url",
			body: "Check out https://example.com/article for details",
			want: "https://example.com/article",
		},
		{
			name: "first of several",
			body: "https://first.example.com and https://second.example.com",
			want: "https://first.example.com",
		},
		{
			name: "trailing punctuation stripped",
			body: "Read this: https://example.com/post.",
			want: "https://example.com/post",
		},
		{
			name: "http scheme accepted",
			body: "legacy link http://example.org/page here",
			want: "http://example.org/page",
		},
		{
			name: "no url",
			body: "Just a plain civic post about local issues",
			want: "",
		},
		{
			name: "scheme alone ignored",
			body: "what does https:// even mean",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FirstURL(tc.body); got != tc.want {
				t.Fatalf("FirstURL(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestTruncateExcerptCollapsesWhitespace(t *testing.T) {
	got := TruncateExcerpt("  hello\n\n  world\t! ")
	if got != "hello world !" {
		t.Fatalf("expected collapsed excerpt, got %q", got)
	}
}

func TestTruncateExcerptCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "abcdefghij "
	}
	got := TruncateExcerpt(long)
	if len([]rune(got)) > maxExcerptRunes {
		t.Fatalf("excerpt length %d exceeds cap %d", len([]rune(got)), maxExcerptRunes)
	}
}
