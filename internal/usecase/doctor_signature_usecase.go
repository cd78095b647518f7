package usecase

import (
	"context"
	"errors"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSignatureNotFound = errors.New("doctor signature not found")
	ErrSignatureExists   = errors.New("a signature for this doctor already exists")
)

const auditEntitySignature = "doctor_signature"

type DoctorSignatureUsecase interface {
	// Save creates the signature or replaces the image of an existing one
	// with the same doctor name.
	Save(ctx context.Context, req *dto.CreateDoctorSignatureRequest) (*dto.DoctorSignatureResponse, error)
	GetAll(ctx context.Context) ([]dto.DoctorSignatureResponse, error)
	GetByID(ctx context.Context, id int) (*dto.DoctorSignatureResponse, error)
	GetByDoctorName(ctx context.Context, name string) (*dto.DoctorSignatureResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDoctorSignatureRequest) (*dto.DoctorSignatureResponse, error)
	Delete(ctx context.Context, id int) error
}

type doctorSignatureUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	signatureRepo repository.DoctorSignatureRepository
	auditService  service.AuditService
}

func NewDoctorSignatureUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	signatureRepo repository.DoctorSignatureRepository,
	auditService service.AuditService,
) DoctorSignatureUsecase {
	return &doctorSignatureUsecase{
		db:            db,
		log:           log,
		signatureRepo: signatureRepo,
		auditService:  auditService,
	}
}

func (u *doctorSignatureUsecase) Save(ctx context.Context, req *dto.CreateDoctorSignatureRequest) (*dto.DoctorSignatureResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	signature, err := u.signatureRepo.FindByDoctorName(tx, req.DoctorName)
	switch {
	case err == nil:
		old := *signature
		signature.SignatureImage = req.SignatureImage
		if err := u.signatureRepo.Update(tx, signature); err != nil {
			u.log.Warnf("Failed to update doctor signature: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogUpdate(ctx, tx, auditEntitySignature, signature.ID, &old, signature); err != nil {
			return nil, err
		}
	case isNotFound(err):
		signature = &entity.DoctorSignature{
			DoctorName:     req.DoctorName,
			SignatureImage: req.SignatureImage,
		}
		if err := u.signatureRepo.Create(tx, signature); err != nil {
			if isDuplicateKeyError(err) {
				return nil, ErrSignatureExists
			}
			u.log.Warnf("Failed to create doctor signature: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogCreate(ctx, tx, auditEntitySignature, signature.ID, signature); err != nil {
			return nil, err
		}
	default:
		u.log.Warnf("Failed to find doctor signature: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorSignatureToResponse(signature), nil
}

func (u *doctorSignatureUsecase) GetAll(ctx context.Context) ([]dto.DoctorSignatureResponse, error) {
	signatures, err := u.signatureRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctor signatures: %+v", err)
		return nil, err
	}
	return converter.DoctorSignaturesToResponses(signatures), nil
}

func (u *doctorSignatureUsecase) GetByID(ctx context.Context, id int) (*dto.DoctorSignatureResponse, error) {
	signature, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.DoctorSignatureToResponse(signature), nil
}

func (u *doctorSignatureUsecase) GetByDoctorName(ctx context.Context, name string) (*dto.DoctorSignatureResponse, error) {
	signature, err := u.signatureRepo.FindByDoctorName(u.db.WithContext(ctx), name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSignatureNotFound
		}
		u.log.Warnf("Failed to find doctor signature: %+v", err)
		return nil, err
	}
	return converter.DoctorSignatureToResponse(signature), nil
}

// Update keeps the stored image when the request carries none.
func (u *doctorSignatureUsecase) Update(ctx context.Context, id int, req *dto.UpdateDoctorSignatureRequest) (*dto.DoctorSignatureResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	signature, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *signature

	var f fieldSetter
	f.setString(&signature.DoctorName, req.DoctorName)
	if req.SignatureImage != nil && *req.SignatureImage != "" {
		signature.SignatureImage = *req.SignatureImage
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.signatureRepo.Update(tx, signature); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSignatureExists
		}
		u.log.Warnf("Failed to update doctor signature: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntitySignature, signature.ID, &old, signature); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorSignatureToResponse(signature), nil
}

func (u *doctorSignatureUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	signature, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.signatureRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete doctor signature: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntitySignature, id, signature); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *doctorSignatureUsecase) findByID(db *gorm.DB, id int) (*entity.DoctorSignature, error) {
	signature, err := u.signatureRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSignatureNotFound
		}
		u.log.Warnf("Failed to find doctor signature: %+v", err)
		return nil, err
	}
	return signature, nil
}
