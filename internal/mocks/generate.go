package mocks

//go:generate mockery --name EncounterStore --srcpkg github.com/aevon-lab/healstats/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
