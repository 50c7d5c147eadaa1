package repository

import (
	"context"
	"fmt"

	"bonkers/models"
	"bonkers/storage"
)

// Field names in the user store, kept compatible with the historical
// users.json layout.
const (
	userFieldOsuID  = "osuid"
	userFieldBonks  = "bonks"
	userFieldGuilds = "guilds"
)

// UserRepository provides typed access to user records in a flat-file store.
type UserRepository struct {
	store *storage.Store
}

// NewUserRepository creates a user repository over the given store.
func NewUserRepository(store *storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetAll returns every known user record keyed by Discord ID.
func (r *UserRepository) GetAll(ctx context.Context) (map[string]*models.UserRecord, error) {
	all := r.store.ReadAll()
	users := make(map[string]*models.UserRecord, len(all))
	for id, record := range all {
		users[id] = decodeUserRecord(record)
	}
	return users, nil
}

// Get returns the record for discordID. An unknown id yields an empty record,
// never an error.
func (r *UserRepository) Get(ctx context.Context, discordID string) (*models.UserRecord, error) {
	return decodeUserRecord(r.store.ReadAll()[discordID]), nil
}

// LinkOsuAccount stores osuID as the user's linked account and adds guildID to
// their subscribed guilds. The guild set is a union with the existing one, so
// registering from a new guild never drops prior subscriptions, and
// re-registering a different account keeps the other guilds' subscriptions
// intact.
func (r *UserRepository) LinkOsuAccount(ctx context.Context, discordID, osuID, guildID string) error {
	err := r.store.Update(discordID, func(record storage.Record) storage.Record {
		record[userFieldOsuID] = osuID
		guilds := decodeStringSlice(record[userFieldGuilds])
		if !contains(guilds, guildID) {
			guilds = append(guilds, guildID)
		}
		record[userFieldGuilds] = guilds
		return record
	})
	if err != nil {
		return fmt.Errorf("failed to link osu account for user %s: %w", discordID, err)
	}
	return nil
}

// RemoveGuild removes guildID from the user's subscribed guilds. Removing an
// absent guild is a no-op; the linked account id is preserved.
func (r *UserRepository) RemoveGuild(ctx context.Context, discordID, guildID string) error {
	err := r.store.Update(discordID, func(record storage.Record) storage.Record {
		guilds := decodeStringSlice(record[userFieldGuilds])
		kept := make([]string, 0, len(guilds))
		for _, id := range guilds {
			if id != guildID {
				kept = append(kept, id)
			}
		}
		record[userFieldGuilds] = kept
		return record
	})
	if err != nil {
		return fmt.Errorf("failed to remove guild %s for user %s: %w", guildID, discordID, err)
	}
	return nil
}

// IncrementBonks adds one to the user's bonk counter and returns the new
// count.
func (r *UserRepository) IncrementBonks(ctx context.Context, discordID string) (int, error) {
	var bonks int
	err := r.store.Update(discordID, func(record storage.Record) storage.Record {
		bonks = decodeInt(record[userFieldBonks], 0) + 1
		record[userFieldBonks] = bonks
		return record
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment bonks for user %s: %w", discordID, err)
	}
	return bonks, nil
}

// decodeUserRecord validates a raw store record into a UserRecord. A nil
// record decodes to the empty record.
func decodeUserRecord(record storage.Record) *models.UserRecord {
	user := &models.UserRecord{Guilds: []string{}}
	if record == nil {
		return user
	}
	user.OsuID = decodeString(record[userFieldOsuID])
	user.Bonks = decodeInt(record[userFieldBonks], 0)
	user.Guilds = decodeStringSlice(record[userFieldGuilds])
	return user
}
