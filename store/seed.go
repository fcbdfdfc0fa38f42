package store

// SeedUserID owns the sample posts. No user with this id exists until the
// first registration.
const SeedUserID int64 = 1

var samplePosts = []struct {
	title   string
	content string
}{
	{
		title:   "Welcome to Our Blog",
		content: "This is the first post on our mini blog platform. We hope you enjoy reading and sharing your thoughts!",
	},
	{
		title:   "Getting Started with Node.js",
		content: "Node.js is a powerful runtime for building server-side applications. In this post, we will explore the basics of Node.js and how to get started.",
	},
	{
		title:   "Understanding REST APIs",
		content: "REST APIs are the backbone of modern web applications. Learn about HTTP methods, status codes, and best practices for API design.",
	},
}

// SeedPosts fills an empty store with the sample posts and reports whether
// it did.
func SeedPosts(s *PostStore) bool {
	if s.Len() != 0 {
		return false
	}
	for _, p := range samplePosts {
		s.CreatePost(p.title, p.content, SeedUserID)
	}
	return true
}
