package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-task-keeper/models"
)

const (
	// names of the unique constraints declared in migrations/00001_create_users.sql
	usersEmailKey      = "users_email_key"
	usersProviderIDKey = "users_provider_id_key"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	userColumns = []string{"id", "email", "name", "avatar_url", "password_hash", "provider_id", "created_at"}
	taskColumns = []string{"id", "user_id", "title", "completed", "created_at"}
)

func createUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(models.User{}.TableName()).
		Columns("email", "name", "avatar_url", "password_hash", "provider_id").
		Values(user.Email, user.Name, user.AvatarURL, user.PasswordHash, user.ProviderID).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

func findUserQuery(column string, value any) (string, []any, error) {
	return psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

func deleteUserQuery(userID int64) (string, []any, error) {
	return psql.Delete(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func listTasksQuery(userID int64) (string, []any, error) {
	return psql.Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
}

func getTaskQuery(userID, taskID int64) (string, []any, error) {
	return psql.Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		ToSql()
}

func createTaskQuery(task models.Task) (string, []any, error) {
	return psql.Insert(models.Task{}.TableName()).
		Columns("user_id", "title", "completed").
		Values(task.UserID, task.Title, task.Completed).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		ToSql()
}

// updateTaskQuery writes only the non-nil fields of update. Squirrel refuses
// to build an UPDATE without SET clauses, so an empty update yields an error.
func updateTaskQuery(update models.TaskUpdate) (string, []any, error) {
	builder := psql.Update(models.Task{}.TableName())

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}

	return builder.
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		ToSql()
}

func deleteTaskQuery(userID, taskID int64) (string, []any, error) {
	return psql.Delete(models.Task{}.TableName()).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		ToSql()
}
