package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TireBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

const tableName = "appointments"

var selectColumns = []string{
	"id",
	"client_name",
	"client_email",
	"car_brand",
	"appointment_date",
	"appointment_time",
	"status",
	"created_at",
	"updated_at",
}

const returningColumns = "RETURNING id, client_name, client_email, car_brand, appointment_date, appointment_time, status, created_at, updated_at"

// Repository репозиторий для работы с записями на шиномонтаж
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSlot берет транзакционную advisory-блокировку слота
// Блокировка освобождается при фиксации или откате транзакции и сериализует
// конкурентные записи в один и тот же слот. Вне транзакции возвращает ErrTransaction.
func (r *Repository) LockSlot(ctx context.Context, slot domain.Slot) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSlot - slot %s", ErrTransaction, slot.Key())
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", slot.Key()); err != nil {
		return fmt.Errorf("%w: LockSlot - acquire lock: %w", ErrExecQuery, err)
	}

	return nil
}

// Create создает запись, только если в слоте меньше capacity активных записей
// Проверка вместимости и вставка выполняются одним запросом:
//
//	INSERT INTO appointments (...) SELECT $1, ... WHERE (SELECT COUNT(*) ...) < $n
//
// Если вставка не произошла, возвращает ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment, capacity int) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	date := appt.Date.Format(domain.DateFormat)

	values := squirrel.Select().
		Column(squirrel.Expr("?::uuid", appt.ID)).
		Column(squirrel.Expr("?::varchar", appt.ClientName)).
		Column(squirrel.Expr("?::varchar", appt.ClientEmail)).
		Column(squirrel.Expr("?::varchar", appt.CarBrand)).
		Column(squirrel.Expr("?::date", date)).
		Column(squirrel.Expr("?::varchar", appt.Time)).
		Column(squirrel.Expr("?::varchar", appt.Status)).
		Where(squirrel.Expr(
			"(SELECT COUNT(*) FROM appointments WHERE appointment_date = ?::date AND appointment_time = ? AND status <> ?) < ?",
			date, appt.Time, domain.StatusCancelled, capacity,
		))

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"client_name",
			"client_email",
			"car_brand",
			"appointment_date",
			"appointment_time",
			"status",
		).
		Select(values).
		Suffix(returningColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// List получает записи по фильтру, отсортированные по дате и времени (ASC)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(selectColumns...).From(tableName), filter).
		OrderBy("appointment_date ASC", "appointment_time ASC", "created_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// CountActiveInSlot считает активные (не отмененные) записи в слоте
// excludeID исключает запись из подсчета (при переносе самой записи)
func (r *Repository) CountActiveInSlot(ctx context.Context, slot domain.Slot, excludeID *uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{
			"appointment_date": slot.Date.Format(domain.DateFormat),
			"appointment_time": slot.Time,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveInSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveInSlot - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveByDate считает активные записи на дату по каждому слоту
// Слоты без записей в результат не попадают
func (r *Repository) CountActiveByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("appointment_time", "COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		GroupBy("appointment_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var (
			slotTime types.TimeString
			count    int
		)
		if err := rows.Scan(&slotTime, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDate - scan row: %v", ErrScanRow, err)
		}
		counts[slotTime] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateStatus меняет статус записи, если текущий статус равен from (compare-and-set)
// Возвращает ErrAppointmentNotFound, если записи нет, и ErrStatusConflict,
// если статус уже другой.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix(returningColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.missingOrConflict(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// UpdateDetails обновляет данные клиента и слот записи в статусе pending
func (r *Repository) UpdateDetails(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("client_name", appt.ClientName).
		Set("client_email", appt.ClientEmail).
		Set("car_brand", appt.CarBrand).
		Set("appointment_date", appt.Date.Format(domain.DateFormat)).
		Set("appointment_time", appt.Time).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID, "status": domain.StatusPending}).
		Suffix(returningColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.missingOrConflict(ctx, appt.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDetails - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete физически удаляет запись (административная очистка)
// Для обычной отмены используется UpdateStatus -> cancelled
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// missingOrConflict различает отсутствующую запись и проигранную гонку статусов
func (r *Repository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusConflict
}

// applyFilter добавляет условия фильтра к запросу
func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.AppointmentFilter) squirrel.SelectBuilder {
	if filter.ClientEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"LOWER(client_email)": strings.ToLower(strings.TrimSpace(*filter.ClientEmail))})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_time": *filter.Time})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}
	return selectBuilder
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну строку в запись
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.ClientEmail,
		&appt.CarBrand,
		&appt.Date,
		&appt.Time,
		&appt.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Date = domain.NormalizeDate(appt.Date)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
