package service

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"hyperhive-backend/internal/models"
)

// Static keyword dictionaries used by the contribution analysis.
// Ordered slices, not maps: ties in the output sort are broken by
// dictionary order, so iteration must be deterministic.

type patternCategory struct {
	Name     string
	Keywords []string
}

var technologyPatterns = []patternCategory{
	{"ASP.NET Core", []string{"Startup.cs", "Program.cs", "appsettings.json", "Microsoft.AspNetCore", "UseRouting", "MapControllers"}},
	{"Entity Framework", []string{"DbContext", "DbSet", "OnModelCreating", "Migration", "EntityFrameworkCore"}},
	{"Dapper", []string{"Dapper", "QueryAsync", "ExecuteAsync", "IDbRepository"}},
	{"MySQL", []string{"MySqlConnection", "MySql.Data", "CREATE TABLE", "INSERT INTO"}},
	{"JWT Authentication", []string{"JwtBearer", "JwtSecurityToken", "TokenValidationParameters", "GenerateToken"}},
	{"REST API", []string{"ApiController", "HttpGet", "HttpPost", "HttpPut", "HttpDelete", "Route"}},
	{"Swagger", []string{"SwaggerGen", "SwaggerUI", "OpenApiInfo", "AddSwaggerGen"}},
	{"Dependency Injection", []string{"AddScoped", "AddTransient", "AddSingleton", "IServiceCollection"}},
	{"BCrypt", []string{"BCrypt", "HashPassword", "VerifyPassword"}},
	{"Serilog", []string{"Serilog", "Log.Logger", "WriteTo"}},
	{"AWS SDK", []string{"AWSSDK", "Amazon", "S3", "DynamoDB", "Lambda"}},
	{"MediatR", []string{"MediatR", "IRequest", "IRequestHandler", "SendAsync"}},
	{"Docker", []string{"Dockerfile", "docker-compose", ".dockerignore"}},
	{"Unit Testing", []string{"xUnit", "NUnit", "Moq", "Test", "Assert"}},
	{"GraphQL", []string{"GraphQL", "Query", "Mutation", "Schema"}},
	{"gRPC", []string{"Grpc", "proto", "ServiceDefinition"}},
	{"Redis", []string{"Redis", "StackExchange.Redis", "IDatabase"}},
	{"RabbitMQ", []string{"RabbitMQ", "IModel", "QueueDeclare"}},
	{"Kafka", []string{"Kafka", "Confluent", "Producer", "Consumer"}},
	{"React", []string{"React", "useState", "useEffect", "Component", ".jsx"}},
	{"Angular", []string{"Angular", "@Component", "@Injectable", ".ts"}},
	{"Vue.js", []string{"Vue", "vue", ".vue", "VueComponent"}},
	{"Node.js", []string{"Node.js", "express", "require(", "module.exports"}},
}

var domainPatterns = []patternCategory{
	{"Backend API", []string{"Controllers", "Services", "Repositories", "ApiController"}},
	{"Database", []string{"DataAccess", "Repository", "DbContext", "Migration", "SQL"}},
	{"Authentication", []string{"Auth", "Login", "Signup", "JWT", "Token", "Password"}},
	{"Frontend", []string{".jsx", ".tsx", ".vue", "React", "Angular", "Vue", "Component"}},
	{"Infrastructure", []string{"Infrastructure", "Config", "Startup", "Program.cs"}},
	{"Testing", []string{"Tests", "Test", "Spec", "Mock", "Fixture"}},
	{"DevOps", []string{"Dockerfile", "CI/CD", "pipeline", "deploy", "kubernetes", ".github"}},
	{"Documentation", []string{"README", ".md", "docs", "Documentation"}},
}

var conceptPatterns = []patternCategory{
	{"Async/Await", []string{"async", "await", "Task", "Task<", "async Task"}},
	{"LINQ", []string{".Where(", ".Select(", ".FirstOrDefault(", ".Any(", ".ToList("}},
	{"Dependency Injection", []string{"AddScoped", "AddTransient", "AddSingleton", "IServiceProvider"}},
	{"Repository Pattern", []string{"IRepository", "Repository", "IDbRepository"}},
	{"Unit of Work", []string{"IUnitOfWork", "UnitOfWork", "SaveChanges"}},
	{"Factory Pattern", []string{"Factory", "Create", "IFactory"}},
	{"Strategy Pattern", []string{"IStrategy", "Strategy", "Execute"}},
	{"Observer Pattern", []string{"IObserver", "Subscribe", "Notify"}},
	{"Middleware", []string{"UseMiddleware", "IMiddleware", "InvokeAsync"}},
	{"Attribute Routing", []string{"[Route(", "[HttpGet(", "[HttpPost("}},
	{"Model Validation", []string{"[Required]", "[EmailAddress]", "[StringLength]", "ModelState"}},
	{"Error Handling", []string{"try", "catch", "throw", "Exception", "ErrorHandler"}},
	{"Logging", []string{"ILogger", "LogInformation", "LogError", "LogWarning"}},
	{"Configuration", []string{"IConfiguration", "appsettings", "GetSection", "GetValue"}},
	{"Caching", []string{"IMemoryCache", "Cache", "GetOrCreate", "Set"}},
}

var languageExtensions = []patternCategory{
	{"C#", []string{".cs", ".csx"}},
	{"JavaScript", []string{".js", ".jsx", ".mjs"}},
	{"TypeScript", []string{".ts", ".tsx"}},
	{"Python", []string{".py", ".pyw"}},
	{"Java", []string{".java"}},
	{"SQL", []string{".sql"}},
	{"HTML", []string{".html", ".htm"}},
	{"CSS", []string{".css", ".scss", ".sass"}},
	{"JSON", []string{".json"}},
	{"XML", []string{".xml", ".config"}},
	{"YAML", []string{".yml", ".yaml"}},
	{"Shell", []string{".sh", ".bash", ".ps1"}},
	{"Docker", []string{"Dockerfile", ".dockerignore"}},
	{"Markdown", []string{".md", ".markdown"}},
	{"Go", []string{".go"}},
	{"Rust", []string{".rs"}},
	{"PHP", []string{".php"}},
	{"Ruby", []string{".rb"}},
}

const (
	maxExampleFiles    = 10
	maxExampleSnippets = 5
)

func commitMessage(c models.GitHubCommit) string {
	if c.Commit == nil {
		return ""
	}
	return c.Commit.Message
}

// buildCorpus joins commit messages (doubled, so commit text weighs more
// than PR text), PR titles and bodies, and optionally filenames into a
// single search corpus.
func buildCorpus(commits []models.GitHubCommit, pullRequests []models.GitHubPullRequest, includeFiles bool) string {
	var sb strings.Builder
	for _, c := range commits {
		msg := commitMessage(c)
		sb.WriteString(msg)
		sb.WriteString(" ")
		sb.WriteString(msg)
		sb.WriteString(" ")
	}
	for _, pr := range pullRequests {
		sb.WriteString(pr.Title)
		sb.WriteString(" ")
		sb.WriteString(pr.Body)
		sb.WriteString(" ")
	}
	if includeFiles {
		for _, c := range commits {
			for _, f := range c.Files {
				sb.WriteString(f.Filename)
				sb.WriteString(" ")
			}
		}
	}
	return sb.String()
}

func countOccurrences(corpus, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(strings.ToLower(corpus), strings.ToLower(keyword))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// appendUnique appends v if not already present, up to cap limit.
func appendUnique(list []string, seen map[string]bool, v string, limit int) []string {
	if len(list) >= limit || seen[v] {
		return list
	}
	seen[v] = true
	return append(list, v)
}

func analyzeTechnologies(commits []models.GitHubCommit, pullRequests []models.GitHubPullRequest) []models.TechnologyUsage {
	corpus := buildCorpus(commits, pullRequests, true)

	var usages []models.TechnologyUsage
	total := 0
	for _, tech := range technologyPatterns {
		count := 0
		var files []string
		seen := make(map[string]bool)
		for _, kw := range tech.Keywords {
			count += countOccurrences(corpus, kw)
			for _, c := range commits {
				for _, f := range c.Files {
					if containsFold(f.Filename, kw) {
						files = appendUnique(files, seen, f.Filename, maxExampleFiles)
					}
				}
			}
		}
		if count > 0 {
			usages = append(usages, models.TechnologyUsage{Technology: tech.Name, UsageCount: count, Files: files})
			total += count
		}
	}

	for i := range usages {
		usages[i].Percentage = float64(usages[i].UsageCount) / float64(total) * 100
	}
	sort.SliceStable(usages, func(i, j int) bool { return usages[i].UsageCount > usages[j].UsageCount })
	return usages
}

func analyzeDomainAreas(commits []models.GitHubCommit, pullRequests []models.GitHubPullRequest) []models.DomainArea {
	corpus := buildCorpus(commits, pullRequests, true)

	var areas []models.DomainArea
	total := 0
	for _, area := range domainPatterns {
		count := 0
		var examples []string
		seen := make(map[string]bool)
		for _, kw := range area.Keywords {
			count += countOccurrences(corpus, kw)
			for _, c := range commits {
				msg := commitMessage(c)
				if containsFold(msg, kw) {
					examples = appendUnique(examples, seen, firstLine(msg), maxExampleSnippets)
				}
			}
			for _, pr := range pullRequests {
				if containsFold(pr.Title, kw) {
					examples = appendUnique(examples, seen, pr.Title, maxExampleSnippets)
				}
			}
		}
		if count > 0 {
			areas = append(areas, models.DomainArea{Area: area.Name, ContributionCount: count, Examples: examples})
			total += count
		}
	}

	for i := range areas {
		areas[i].Percentage = float64(areas[i].ContributionCount) / float64(total) * 100
	}
	sort.SliceStable(areas, func(i, j int) bool { return areas[i].ContributionCount > areas[j].ContributionCount })
	return areas
}

func analyzeConcepts(commits []models.GitHubCommit) []models.ConceptUsage {
	var sb strings.Builder
	for _, c := range commits {
		sb.WriteString(commitMessage(c))
		sb.WriteString(" ")
	}
	corpus := sb.String()

	var concepts []models.ConceptUsage
	total := 0
	for _, concept := range conceptPatterns {
		count := 0
		var examples []string
		seen := make(map[string]bool)
		for _, kw := range concept.Keywords {
			count += countOccurrences(corpus, kw)
			for _, c := range commits {
				msg := commitMessage(c)
				if containsFold(msg, kw) {
					examples = appendUnique(examples, seen, firstLine(msg), maxExampleSnippets)
				}
			}
		}
		if count > 0 {
			concepts = append(concepts, models.ConceptUsage{Concept: concept.Name, OccurrenceCount: count, Examples: examples})
			total += count
		}
	}

	for i := range concepts {
		concepts[i].Percentage = float64(concepts[i].OccurrenceCount) / float64(total) * 100
	}
	sort.SliceStable(concepts, func(i, j int) bool { return concepts[i].OccurrenceCount > concepts[j].OccurrenceCount })
	return concepts
}

func analyzeLanguages(commits []models.GitHubCommit) []models.LanguageUsage {
	counts := make(map[string]int)
	lines := make(map[string]int)
	var order []string

	record := func(language string, additions int) {
		if _, ok := counts[language]; !ok {
			order = append(order, language)
		}
		counts[language]++
		lines[language] += additions
	}

	for _, c := range commits {
		if len(c.Files) > 0 {
			for _, f := range c.Files {
				record(detectLanguage(f.Filename), f.Additions)
			}
			continue
		}
		// No file list: fall back to file paths mentioned in the message.
		additions := 0
		if c.Stats != nil {
			additions = c.Stats.Additions
		}
		for _, filePath := range extractFilePaths(commitMessage(c)) {
			record(detectLanguage(filePath), additions)
		}
	}

	totalFiles := 0
	for _, n := range counts {
		totalFiles += n
	}

	usages := make([]models.LanguageUsage, 0, len(order))
	for _, language := range order {
		pct := 0.0
		if totalFiles > 0 {
			pct = float64(counts[language]) / float64(totalFiles) * 100
		}
		usages = append(usages, models.LanguageUsage{
			Language:    language,
			FileCount:   counts[language],
			LinesOfCode: lines[language],
			Percentage:  pct,
		})
	}
	sort.SliceStable(usages, func(i, j int) bool { return usages[i].FileCount > usages[j].FileCount })
	return usages
}

// detectLanguage resolves a file path to a language by extension, with
// exact-filename entries for extensionless markers like Dockerfile.
func detectLanguage(filePath string) string {
	ext := strings.ToLower(path.Ext(filePath))
	fileName := path.Base(filePath)

	for _, lang := range languageExtensions {
		for _, marker := range lang.Keywords {
			if ext == marker || fileName == marker {
				return lang.Name
			}
		}
	}
	return "Unknown"
}

var filePathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\w/\\]+\.\w+`),
	regexp.MustCompile(`[A-Za-z]:\\[^\s]+`),
	regexp.MustCompile(`/[^\s]+`),
}

func extractFilePaths(text string) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, re := range filePathPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths
}
