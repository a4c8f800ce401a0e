package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/skill"

	"github.com/google/uuid"
)

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, skills []skill.UserSkill) ([]skill.UserSkill, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	return findUserSkills(ctx, r.db, userID)
}

// ReplaceForUser swaps the whole skill profile in one transaction.
func (r *PostgresUserSkillRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, skills []skill.UserSkill) ([]skill.UserSkill, error) {
	var out []skill.UserSkill
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, s := range skills {
			_, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, skill, proficiency_level, years_experience)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (user_id, skill) DO UPDATE
				 SET proficiency_level = EXCLUDED.proficiency_level, years_experience = EXCLUDED.years_experience`,
				userID, s.Name, s.ProficiencyLevel, s.YearsExperience,
			)
			if err != nil {
				return err
			}
		}
		var err error
		out, err = findUserSkills(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findUserSkills(ctx context.Context, q database.Querier, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := q.Query(ctx,
		`SELECT user_id, skill, proficiency_level, years_experience
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY skill ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		var us skill.UserSkill
		if err := rows.Scan(&us.UserID, &us.Name, &us.ProficiencyLevel, &us.YearsExperience); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
