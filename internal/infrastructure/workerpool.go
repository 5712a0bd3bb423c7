package infrastructure

import "sync"

// Task représente une tâche à exécuter
type Task func() error

// WorkerPool exécute des tâches indépendantes en parallèle. Cycle de vie à
// sens unique: Start, Submit, puis Wait exactement une fois; les erreurs se
// relèvent après coup via FirstError. Pas d'annulation: les tâches d'un run
// sont courtes et toutes nécessaires.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	errs        chan error
	wg          sync.WaitGroup
}

// NewWorkerPool crée un pool de workers
func NewWorkerPool(workerCount int) *WorkerPool {
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		errs:        make(chan error, workerCount*2),
	}
}

// worker consomme les tâches jusqu'à fermeture du canal
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.tasks {
		if err := task(); err != nil {
			select {
			case wp.errs <- err:
			default:
				// Canal d'erreurs plein, on ignore
			}
		}
	}
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche au pool
func (wp *WorkerPool) Submit(task Task) {
	wp.tasks <- task
}

// Wait ferme le canal de tâches et attend la fin de tous les workers
func (wp *WorkerPool) Wait() {
	close(wp.tasks)
	wp.wg.Wait()
}

// FirstError retourne la première erreur relevée, nil si toutes les tâches
// ont réussi. À appeler après Wait.
func (wp *WorkerPool) FirstError() error {
	select {
	case err := <-wp.errs:
		return err
	default:
		return nil
	}
}
