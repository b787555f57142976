package models

import "strings"

// Technology maps a named technology to its display and syntax-highlighting
// attributes. The table is static and loaded once; Icon is the icon set
// identifier the frontend resolves (react-icons names).
type Technology struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Language string `json:"language"`
}

// Technologies is the closed set of technologies a post may be tagged with.
var Technologies = []Technology{
	// Frontend
	{Name: "HTML5", Color: "#E34F26", Icon: "SiHtml5", Language: "html"},
	{Name: "CSS3", Color: "#1572B6", Icon: "SiCss3", Language: "css"},
	{Name: "JavaScript", Color: "#F7DF1E", Icon: "SiJavascript", Language: "javascript"},
	{Name: "TypeScript", Color: "#3178C6", Icon: "SiTypescript", Language: "typescript"},
	{Name: "React", Color: "#61DAFB", Icon: "SiReact", Language: "javascript"},
	{Name: "Vue.js", Color: "#42B883", Icon: "SiVuedotjs", Language: "javascript"},
	{Name: "Svelte", Color: "#FF3E00", Icon: "SiSvelte", Language: "javascript"},
	{Name: "Next.js", Color: "#000000", Icon: "SiNextdotjs", Language: "javascript"},
	{Name: "Angular", Color: "#DD0031", Icon: "SiAngular", Language: "javascript"},
	{Name: "Tailwind CSS", Color: "#06B6D4", Icon: "SiTailwindcss", Language: "css"},
	{Name: "Bootstrap", Color: "#7952B3", Icon: "SiBootstrap", Language: "css"},
	{Name: "ShadCN", Color: "#000000", Icon: "SiShadcnui", Language: "javascript"},
	// Backend
	{Name: "Node.js", Color: "#339933", Icon: "SiNodedotjs", Language: "javascript"},
	{Name: "Express.js", Color: "#000000", Icon: "SiExpress", Language: "javascript"},
	{Name: "Python", Color: "#3776AB", Icon: "SiPython", Language: "python"},
	{Name: "Django", Color: "#092E20", Icon: "SiDjango", Language: "python"},
	{Name: "Ruby", Color: "#CC342D", Icon: "SiRuby", Language: "ruby"},
	{Name: "Ruby on Rails", Color: "#CC0000", Icon: "SiRubyonrails", Language: "ruby"},
	{Name: "PHP", Color: "#777BB4", Icon: "SiPhp", Language: "php"},
	{Name: "Laravel", Color: "#FF2D20", Icon: "SiLaravel", Language: "php"},
	{Name: "Go", Color: "#00ADD8", Icon: "SiGo", Language: "go"},
	{Name: "Spring", Color: "#6DB33F", Icon: "SiSpring", Language: "java"},
	{Name: ".NET", Color: "#512BD4", Icon: "SiDotnet", Language: "csharp"},
	{Name: "Java", Color: "#007396", Icon: "FaJava", Language: "java"},
	{Name: "Kotlin", Color: "#0095D5", Icon: "SiKotlin", Language: "kotlin"},
	// JavaScript libraries
	{Name: "Redux", Color: "#764ABC", Icon: "SiRedux", Language: "javascript"},
	{Name: "jQuery", Color: "#0769AD", Icon: "SiJquery", Language: "javascript"},
	{Name: "Lodash", Color: "#3492FF", Icon: "SiLodash", Language: "javascript"},
	{Name: "Axios", Color: "#5A29E4", Icon: "SiAxios", Language: "javascript"},
	{Name: "Vite", Color: "#646CFF", Icon: "SiVite", Language: "javascript"},
	{Name: "Webpack", Color: "#8DD6F9", Icon: "SiWebpack", Language: "javascript"},
	// React libraries
	{Name: "Chakra UI", Color: "#319795", Icon: "SiChakraui", Language: "javascript"},
	{Name: "Storybook", Color: "#FF4785", Icon: "SiStorybook", Language: "javascript"},
	{Name: "React Query", Color: "#FF4154", Icon: "SiReactquery", Language: "javascript"},
	{Name: "NextAuth.js", Color: "#000000", Icon: "FaShield", Language: "javascript"},
	// Databases
	{Name: "MongoDB", Color: "#47A248", Icon: "SiMongodb", Language: "json"},
	{Name: "Firebase", Color: "#FFCA28", Icon: "SiFirebase", Language: "javascript"},
}

var technologyIndex = buildTechnologyIndex()

func buildTechnologyIndex() map[string]Technology {
	idx := make(map[string]Technology, len(Technologies))
	for _, t := range Technologies {
		idx[strings.ToLower(t.Name)] = t
	}
	return idx
}

// LookupTechnology returns the descriptor for a technology name, matched
// case-insensitively.
func LookupTechnology(name string) (Technology, bool) {
	t, ok := technologyIndex[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
