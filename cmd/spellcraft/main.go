package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/bloodbond/internal/config"
	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/calculator"
	spellDomain "github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/export"
	"github.com/KirkDiggler/bloodbond/internal/logger"
	"github.com/KirkDiggler/bloodbond/internal/repositories/spells"
	"github.com/KirkDiggler/bloodbond/internal/services"
	spellService "github.com/KirkDiggler/bloodbond/internal/services/spell"
)

func main() {
	effect := flag.String("effect", "", "spell effect, e.g. damage or healing")
	element := flag.String("element", "", "spell element, e.g. fire or moon")
	duration := flag.String("duration", "", "spell duration (default instant)")
	rng := flag.String("range", "", "spell range (default self)")
	level := flag.Int("level", 1, "spell level (1-10)")
	bloodline := flag.String("bloodline", "", "caster bloodline")
	affinity := flag.Int("affinity", 0, "magical affinity bonus")
	specialty := flag.String("specialty", "", "caster specialty")
	specialtyLevel := flag.Int("specialty-level", 1, "specialty level (1-20)")
	rank := flag.String("rank", "", "caster rank (novice to master), sets the class die")
	classDie := flag.Int("class-die", 0, "class die override (4, 6, 8, 10 or 12)")
	roll := flag.Bool("roll", false, "roll the spell's damage formula after creating it")
	chart := flag.String("chart", "", "print the compatibility chart for a bloodline, or \"all\"")
	describe := flag.String("describe", "", "describe the spell in words, e.g. \"heal an ally by touch for an hour\"")
	exportPath := flag.String("export", "", "write the spell to this JSON file instead of stdout")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig, err := logger.LoadConfig(cfg.Log.ConfigPath)
	if err != nil {
		log.Printf("Failed to parse %s, using default logging: %v", cfg.Log.ConfigPath, err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ds, err := data.Load(cfg.Data.Dir)
	if err != nil {
		logger.Errorf("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	providerConfig := &services.ProviderConfig{
		Dataset:   ds,
		CacheSize: cfg.Cache.MaxEntries,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	if cfg.Redis.URL != "" {
		logger.Infof("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			logger.Warningf("Failed to parse Redis URL, falling back to in-memory cache: %v", parseErr)
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(ctx).Err()
			cancel()

			if pingErr != nil {
				logger.Warningf("Failed to connect to Redis, falling back to in-memory cache: %v", pingErr)
			} else {
				logger.Info("Using Redis for the spell cache")
				providerConfig.SpellRepository = spells.NewRedisRepository(&spells.RedisRepoConfig{
					Client: redisClient,
					TTL:    cfg.Cache.TTL,
				})
			}
		}
	} else {
		logger.Debug("No REDIS_URL found, using in-memory cache")
	}

	code := run(providerConfig, &options{
		input: spellService.CreateSpellInput{
			Effect:          *effect,
			Element:         *element,
			Duration:        *duration,
			Range:           *rng,
			Level:           *level,
			Bloodline:       *bloodline,
			MagicalAffinity: *affinity,
			Specialty:       *specialty,
			SpecialtyLevel:  *specialtyLevel,
			ClassDie:        *classDie,
		},
		rank:       *rank,
		roll:       *roll,
		chart:      *chart,
		describe:   *describe,
		exportPath: *exportPath,
	})

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warningf("Failed to close Redis connection: %v", err)
		}
	}

	os.Exit(code)
}

type options struct {
	input      spellService.CreateSpellInput
	rank       string
	roll       bool
	chart      string
	describe   string
	exportPath string
}

func run(providerConfig *services.ProviderConfig, opts *options) int {
	provider, err := services.NewProvider(providerConfig)
	if err != nil {
		logger.Errorf("Failed to create services: %v", err)
		return 1
	}
	svc := provider.SpellService

	if opts.chart != "" {
		return printChart(svc, opts.chart)
	}

	// An explicit -class-die wins over the rank's die
	if opts.rank != "" && opts.input.ClassDie == 0 {
		die, err := calculator.ClassDieForRank(opts.rank)
		if err != nil {
			return usageError(err)
		}
		opts.input.ClassDie = die
	}

	created, err := create(svc, opts)
	if err != nil {
		return usageError(err)
	}

	if opts.exportPath != "" {
		if err := svc.ExportSpell(created, opts.exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Spell exported to %s\n", opts.exportPath)
	} else if err := export.ToWriter(os.Stdout, created); err != nil {
		logger.Errorf("Failed to print spell: %v", err)
		return 1
	}

	if opts.roll {
		result, err := svc.RollSpell(created)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Rolled %s: %v = %d\n", created.Effectiveness.FinalFormula, result.Rolls, result.Total)
	}
	return 0
}

// create reads -describe when given, with explicit flags taking precedence
func create(svc spellService.Service, opts *options) (*spellDomain.Spell, error) {
	if opts.describe == "" {
		return svc.CreateSpell(context.Background(), &opts.input)
	}

	created, parsed, err := svc.CreateSpellFromText(context.Background(), opts.describe, &opts.input)
	if parsed != nil {
		logger.Debugf("Read %q as %s %s, %s, %s (confidence %.2f)", opts.describe,
			parsed.Effect, parsed.Element, parsed.Duration, parsed.Range, parsed.Confidence)
		if parsed.NeedsClarification {
			fmt.Fprintln(os.Stderr, "The description could mean more than one thing:")
			for _, o := range parsed.Options {
				fmt.Fprintf(os.Stderr, "  %s: %s (%.2f)\n", o.Kind, o.Value, o.Score)
			}
		}
	}
	return created, err
}

func printChart(svc spellService.Service, bloodline string) int {
	if strings.EqualFold(bloodline, "all") {
		bloodline = ""
	}

	chart, err := svc.GetCompatibilityChart(bloodline)
	if err != nil {
		return usageError(err)
	}

	for _, entry := range chart {
		marker := ""
		if entry.Fallback {
			marker = " (default)"
		}
		fmt.Printf("%-10s %-10s %3d%% %s%s\n", entry.Bloodline.Title(), entry.Element.Title(),
			entry.Value, calculator.Descriptor(entry.Value), marker)
	}
	return 0
}

func usageError(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if suggestions := dnderr.GetSuggestions(err); len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
	return 2
}
