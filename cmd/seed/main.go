package main

import (
	"os"
	"time"

	"volunteer-matching-be/internal/config"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/mapper"
	"volunteer-matching-be/internal/model"
	"volunteer-matching-be/pkg/advisor/contextbuild"
	"volunteer-matching-be/pkg/database"
	"volunteer-matching-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func timePtr(t time.Time) *time.Time {
	return &t
}

type seedEvent struct {
	event *entity.Event
	tags  []string
}

func main() {
	color.Cyan("🌱 Seeding volunteer matching catalog\n")

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	ownerId := seedOwner(db)

	tagIds := seedTags(db, []string{"環境", "福祉", "子ども", "地域", "防災", "国際協力"})
	color.Green("Tags ready: %d", len(tagIds))

	now := time.Now()
	seeds := []seedEvent{
		{
			event: &entity.Event{
				Name:             "ビーチクリーン活動",
				Place:            strPtr("〇〇海岸"),
				StartsAt:         timePtr(now.AddDate(0, 0, 14).Truncate(time.Hour)),
				EndsAt:           timePtr(now.AddDate(0, 0, 14).Truncate(time.Hour).Add(3 * time.Hour)),
				Fee:              0,
				Capacity:         intPtr(30),
				ShortDescription: "海岸のゴミ拾いイベントです。初参加の方も歓迎します。",
				LongDescription:  strPtr("軍手とゴミ袋は主催者が用意します。動きやすい服装でお越しください。"),
			},
			tags: []string{"環境", "地域"},
		},
		{
			event: &entity.Event{
				Name:             "子ども食堂の調理ボランティア",
				Place:            strPtr("市民センター2階 調理室"),
				StartsAt:         timePtr(now.AddDate(0, 0, 7).Truncate(time.Hour)),
				Fee:              0,
				Capacity:         intPtr(10),
				ShortDescription: "子ども食堂での調理と配膳のお手伝いです。",
			},
			tags: []string{"子ども", "福祉"},
		},
		{
			event: &entity.Event{
				Name:             "多言語おしゃべりカフェ",
				Place:            strPtr("国際交流プラザ"),
				Fee:              300,
				ShortDescription: "外国にルーツを持つ住民との交流イベントの運営サポートです。",
			},
			tags: []string{"国際協力", "地域"},
		},
		{
			event: &entity.Event{
				Name:             "防災倉庫の点検と備蓄整理",
				ShortDescription: "地域の防災倉庫の在庫点検と入れ替え作業です。日程は調整中です。",
			},
			tags: []string{"防災", "地域"},
		},
	}

	eventMapper := mapper.NewEventMapper()
	embeddingMapper := mapper.NewEventEmbeddingMapper()

	for _, seed := range seeds {
		seed.event.Id = uuid.New()
		seed.event.OwnerId = ownerId
		seed.event.CreatedAt = now

		m := eventMapper.ToModel(seed.event)
		if err := db.Create(m).Error; err != nil {
			color.Red("Failed to create event %s: %v", seed.event.Name, err)
			continue
		}

		for _, tagName := range seed.tags {
			if tagId, ok := tagIds[tagName]; ok {
				db.Exec(`INSERT INTO event_tags (event_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
					seed.event.Id, tagId)
			}
		}

		// index synchronously so the advisor works right after seeding
		document := contextbuild.RenderEvent(seed.event)
		res, err := embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
		if err != nil {
			color.Yellow("Skipping embedding for %s: %v", seed.event.Name, err)
			continue
		}

		embeddingModel := embeddingMapper.ToModel(&entity.EventEmbedding{
			Id:             uuid.New(),
			Document:       document,
			EmbeddingValue: res.Embedding.Values,
			EventId:        seed.event.Id,
			CreatedAt:      now,
		})
		if err := db.Create(embeddingModel).Error; err != nil {
			color.Red("Failed to store embedding for %s: %v", seed.event.Name, err)
			continue
		}

		color.Green("Seeded: %s", seed.event.Name)
	}

	color.Cyan("\n✅ Seeding done")
}

func seedOwner(db *gorm.DB) uuid.UUID {
	owner := model.User{
		Id:          uuid.New(),
		DisplayName: "サンプル主催者",
		Email:       "organizer@example.com",
	}

	var existing model.User
	if err := db.Where("email = ?", owner.Email).First(&existing).Error; err == nil {
		return existing.Id
	}

	if err := db.Create(&owner).Error; err != nil {
		color.Red("Failed to create owner: %v", err)
		os.Exit(1)
	}
	return owner.Id
}

func seedTags(db *gorm.DB, names []string) map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID, len(names))
	for _, name := range names {
		tag := model.Tag{
			Id:        uuid.New(),
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			color.Yellow("Tag %s: %v", name, err)
		}

		var stored model.Tag
		if err := db.Where("name = ?", name).First(&stored).Error; err == nil {
			ids[name] = stored.Id
		}
	}
	return ids
}
