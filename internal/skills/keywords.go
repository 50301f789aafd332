package skills

// Keyword tables for Classify. Entries are lowercase; multi-word entries are
// matched as whole-word phrases.

var programmingTerms = set(
	"javascript", "typescript", "python", "java", "c++", "c#", "f#", "golang",
	"rust", "ruby", "php", "swift", "kotlin", "scala", "perl", "haskell",
	"elixir", "erlang", "clojure", "dart", "lua", "matlab", "julia",
	"objective-c", "fortran", "cobol", "assembly", "bash", "shell scripting",
	"powershell", "html", "html5", "css", "css3", "sass", "scss", "solidity",
	"groovy", "visual basic", "vba", "ocaml", "zig", "es6", "ecmascript",
)

// Short names that only count when they are the whole skill.
var programmingExact = set("c", "r", "go", "js", "ts")

var programmingWords = set("programming", "language", "languages", "coding")

var frameworkTerms = set(
	"react", "react.js", "reactjs", "react native", "angular", "angularjs",
	"vue", "vue.js", "vuejs", "svelte", "next.js", "nextjs", "nuxt", "nuxt.js",
	"node", "node.js", "nodejs", "express", "express.js", "expressjs", "nestjs",
	"django", "flask", "fastapi", "spring", "spring boot", "rails",
	"ruby on rails", "laravel", "symfony", ".net", ".net core", "asp.net",
	"dotnet", "jquery", "bootstrap", "tailwind", "tailwind css", "tailwindcss",
	"flutter", "tensorflow", "pytorch", "keras", "scikit-learn", "pandas",
	"numpy", "redux", "gin", "echo", "fiber", "deno", "bun", "electron",
	"xamarin", "hibernate", "graphql", "apollo", "material ui", "mui",
	"socket.io", "three.js", "d3.js", "ionic", "gatsby", "remix",
)

var frameworkWords = set("framework", "frameworks", "library", "libraries", "runtime")

var databaseTerms = set(
	"postgresql", "postgres", "mysql", "mongodb", "mongo", "mongoose", "redis",
	"sqlite", "oracle", "sql server", "mssql", "mariadb", "cassandra",
	"dynamodb", "elasticsearch", "firebase", "firestore", "neo4j", "couchdb",
	"supabase", "snowflake", "bigquery", "cockroachdb", "influxdb", "pl/sql",
	"t-sql", "prisma",
)

var databaseWords = set("database", "databases", "db", "sql", "nosql")

var toolTerms = set(
	"git", "github", "gitlab", "bitbucket", "docker", "kubernetes", "k8s",
	"jenkins", "jira", "confluence", "trello", "figma", "sketch", "photoshop",
	"illustrator", "adobe xd", "visual studio", "vs code", "vscode",
	"intellij", "eclipse", "xcode", "android studio", "postman", "webpack",
	"vite", "babel", "npm", "yarn", "aws", "azure", "gcp", "google cloud",
	"terraform", "ansible", "linux", "unix", "excel", "microsoft office",
	"tableau", "power bi", "autocad", "solidworks", "vim", "slack", "grafana",
	"prometheus", "nginx", "apache", "selenium", "cypress", "jest", "sonarqube",
	"wireshark", "splunk", "heroku", "vercel", "netlify", "circleci",
	"github actions", "unity", "blender", "canva", "notion",
)

var toolWords = set(
	"tool", "tools", "software", "platform", "ide", "editor", "cad", "design",
	"analysis", "testing", "deployment", "monitoring", "security",
)

var softSkillTerms = set(
	"communication", "leadership", "teamwork", "team work", "team player",
	"problem solving", "problem-solving", "critical thinking",
	"time management", "adaptability", "creativity", "collaboration",
	"public speaking", "negotiation", "mentoring", "conflict resolution",
	"attention to detail", "empathy", "emotional intelligence",
	"decision making", "decision-making", "presentation", "customer service",
	"work ethic", "self-motivated", "multitasking", "active listening",
	"stakeholder management",
)

var softSkillWords = set("soft", "communication", "leadership", "management", "interpersonal")

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
