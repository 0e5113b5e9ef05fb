package nav

const (
	guideRepo    = "https://github.com/CharlieDigital/typescript-is-like-csharp"
	guideDocsDir = "docs"
)

// GuideSource returns the authored navigation of the TypeScript-to-C# guide.
// Each call returns a fresh value.
func GuideSource() Source {
	return Source{
		Title:       "TypeScript is Like C#",
		Description: "A guide for TypeScript and Node.js backend developers moving to C# and .NET",
		Head: []HeadTag{
			{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
			{Tag: "meta", Attrs: map[string]string{"property": "og:title", "content": "TypeScript is Like C#"}},
			{Tag: "meta", Attrs: map[string]string{"property": "og:description", "content": "Side-by-side TypeScript and C# for backend developers"}},
		},
		Nav: []NavItem{
			{Text: "Home", Link: "/"},
			{Text: "Guide", Link: "/pages/intro-and-motivation"},
		},
		Sidebar: Sidebar{
			{
				Text: "Intro",
				Items: []NavItem{
					{Text: "Intro and Motivation", Link: "/pages/intro-and-motivation"},
					{Text: "Conventions", Link: "/pages/conventions"},
				},
			},
			{
				Text: "Basics",
				Items: []NavItem{
					{Text: "Project Setup", Link: "/pages/basics/project-setup"},
					{Text: "Language Basics", Link: "/pages/basics/language"},
					{Text: "Classes and Interfaces", Link: "/pages/basics/classes-and-interfaces"},
					{Text: "Arrays and Collections", Link: "/pages/basics/collections"},
					{Text: "Functional Techniques", Link: "/pages/basics/functional"},
				},
			},
			{
				Text: "Intermediate",
				Items: []NavItem{
					{Text: "Async and Await", Link: "/pages/intermediate/async-await"},
					{Text: "Generics", Link: "/pages/intermediate/generics"},
					{Text: "Union Types", Link: "/pages/intermediate/union-types"},
					{Text: "Extension Members", Link: "/pages/intermediate/extension-members"},
					{Text: "Formatting and Linting", Link: "/pages/intermediate/formatting-linting"},
					{Text: "Unit Testing", Link: "/pages/intermediate/unit-testing"},
					{Text: "Scripting", Link: "/pages/intermediate/scripting"},
				},
			},
			{
				Text: "Backend",
				Items: []NavItem{
					{Text: "Web APIs", Link: "/pages/backend/web-apis"},
					{Text: "Dependency Injection", Link: "/pages/backend/dependency-injection"},
					{Text: "Databases and ORMs", Link: "/pages/backend/databases-and-orms"},
					{Text: "Transactions", Link: "/pages/backend/transactions"},
					{Text: "Testing with Databases", Link: "/pages/backend/testing-databases"},
				},
			},
			{
				Text:      "How Do I...",
				Collapsed: true,
				Items:     []NavItem{},
			},
		},
		EditLink: EditLink{
			Pattern: guideRepo + "/edit/main/" + guideDocsDir + "/" + PathPlaceholder,
			Text:    "Edit this page on GitHub",
		},
		SocialLinks: []SocialLink{
			{Icon: "github", Link: guideRepo},
		},
	}
}

// BuildConfig builds the guide's site configuration from the embedded navigation.
func BuildConfig() (*SiteConfig, error) {
	return Build(GuideSource())
}
